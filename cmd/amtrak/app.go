package main

import (
	"context"

	"github.com/mirzahilmi/amtrak-trains/internal/archive"
	"github.com/mirzahilmi/amtrak-trains/internal/common/config"
	"github.com/mirzahilmi/amtrak-trains/internal/cryptojs"
	"github.com/mirzahilmi/amtrak-trains/internal/secret"
	"github.com/mirzahilmi/amtrak-trains/internal/trainsdata"
	"github.com/oklog/ulid/v2"
	"github.com/rs/zerolog/log"
)

type app struct {
	run       ulid.ULID
	client    *trainsdata.Client
	decrypter trainsdata.Decrypter
	archive   *archive.Archive
}

func setup(ctx context.Context, cfg config.Config, run ulid.ULID) (*app, error) {
	cipher := cfg.Cipher
	if cfg.UsesVault() {
		vault, err := secret.NewVault(cfg.Vault)
		if err != nil {
			return nil, err
		}
		cipher, err = vault.Resolve(ctx, cipher)
		if err != nil {
			return nil, err
		}
	}
	params, err := cryptojs.ParseParams(cipher.SaltHex, cipher.IVHex)
	if err != nil {
		return nil, err
	}

	a := &app{
		run:       run,
		client:    trainsdata.NewClient(cfg.Feed.URL, cfg.Feed.Timeout),
		decrypter: trainsdata.NewDecrypter(cipher.PublicKey, params),
	}

	if cfg.Archive.Enabled {
		a.archive, err = archive.New(archive.NewS3Client(cfg.S3), cfg.S3, cfg.Archive)
		if err != nil {
			return nil, err
		}
	}
	return a, nil
}

// load fetches and decrypts the live feed, archiving it when enabled.
func (a *app) load(ctx context.Context) (*trainsdata.FeatureCollection, error) {
	body, err := a.client.Fetch(ctx)
	if err != nil {
		return nil, err
	}
	fc, err := a.decrypter.Decrypt(body)
	if err != nil {
		return nil, err
	}
	log.Info().Int("features", len(fc.Features)).Msg("decrypted trains data")

	if a.archive != nil {
		if _, err := a.archive.Put(ctx, a.run, fc); err != nil {
			return nil, err
		}
	}
	return fc, nil
}
