package main

import (
	"fmt"
	"program-portal-go/internal/database"
	"program-portal-go/internal/store"
	"program-portal-go/internal/store/airtable"
	"program-portal-go/internal/store/fixture"
)

// openGateway builds the record store selected by cfg. The returned close
// function is never nil.
func openGateway(cfg *Config) (store.Gateway, func(), error) {
	noop := func() {}

	if err := cfg.Validate(); err != nil {
		return nil, noop, err
	}

	switch cfg.Store {
	case StoreAirtable:
		var opts []airtable.Option
		if cfg.AirtableBaseURL != "" {
			opts = append(opts, airtable.WithBaseURL(cfg.AirtableBaseURL))
		}
		gw, err := airtable.NewStore(cfg.AirtableAPIKey, cfg.AirtableBaseID, opts...)
		if err != nil {
			return nil, noop, fmt.Errorf("%w: %v", ErrStoreNotConfigured, err)
		}
		return gw, noop, nil

	case StorePostgres:
		db, err := database.NewClient(cfg.DBConn)
		if err != nil {
			return nil, noop, fmt.Errorf("%w: %v", ErrStoreNotConfigured, err)
		}
		return db, db.Close, nil

	default:
		gw, err := fixture.Load(cfg.FixturePath)
		if err != nil {
			return nil, noop, fmt.Errorf("%w: %v", ErrStoreNotConfigured, err)
		}
		return gw, noop, nil
	}
}
