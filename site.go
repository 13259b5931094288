package cheesyblog

import (
	"errors"
	"fmt"
	"log/slog"
)

// Site is the main entry point. It opens the configured persistence backend and the stores sharing it.
type Site struct {
	Posts        *PostStore
	Reviews      *ReviewBook
	Reservations *ReservationBook
	Menu         MenuView
	kv           KVStoreCloser
	logger       *slog.Logger
}

// OpenSite opens a Site for cfg. A nil logger is built from cfg.LogLevel.
func OpenSite(cfg Config, logger *slog.Logger) (*Site, error) {
	cfg = cfg.withDefaults()

	if logger == nil {
		var err error
		if logger, err = cfg.Logger(); err != nil {
			return nil, err
		}
	}

	var seed []Post
	if cfg.SeedDir != "" {
		var err error
		if seed, err = LoadSeedDir(nil, cfg.SeedDir); err != nil {
			return nil, err
		}
		if len(seed) == 0 {
			return nil, fmt.Errorf("no seed posts found in %s", cfg.SeedDir)
		}
	}

	kv, err := cfg.OpenKVStore(logger)
	if err != nil {
		return nil, err
	}

	site := &Site{kv: kv, logger: logger}

	if site.Posts, err = OpenPostStore(kv, Options{Logger: logger, Seed: seed}); err != nil {
		return nil, site.closeWith(err)
	}

	if site.Reviews, err = OpenReviewBook(kv, logger); err != nil {
		return nil, site.closeWith(err)
	}

	if site.Reservations, err = OpenReservationBook(kv, logger); err != nil {
		return nil, site.closeWith(err)
	}

	if cfg.MenuFile != "" {
		site.Menu = OpenMenu(cfg.MenuFile, logger)
	}

	logger.Info("site opened",
		slog.String("backend", string(cfg.Backend)),
		slog.Int("posts", len(site.Posts.Posts())))

	return site, nil
}

// Close releases the persistence backend
func (s *Site) Close() error {
	s.logger.Debug("closing site")
	return s.kv.Close()
}

func (s *Site) closeWith(err error) error {
	if closeErr := s.kv.Close(); closeErr != nil {
		return errors.Join(err, closeErr)
	}
	return err
}
