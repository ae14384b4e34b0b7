package secret

import (
	"context"
	"fmt"

	vaultApi "github.com/hashicorp/vault/api"
	"github.com/mirzahilmi/amtrak-trains/internal/common/config"
	"github.com/rs/zerolog/log"
)

const defaultMount = "secret"

// Keys read from the KV v2 secret.
const (
	KeySalt      = "salt"
	KeyIV        = "iv"
	KeyPublicKey = "public_key"
)

// Vault resolves the feed cipher constants from a KV v2 secret.
type Vault struct {
	kv   *vaultApi.KVv2
	path string
}

func NewVault(cfg config.Vault) (*Vault, error) {
	vaultConfig := vaultApi.DefaultConfig()
	vaultConfig.Address = cfg.URL
	client, err := vaultApi.NewClient(vaultConfig)
	if err != nil {
		return nil, err
	}
	client.SetToken(cfg.Token)

	mount := cfg.Mount
	if mount == "" {
		mount = defaultMount
	}
	return &Vault{kv: client.KVv2(mount), path: cfg.Path}, nil
}

// Resolve overlays whatever the secret holds on top of defaults.
func (v *Vault) Resolve(ctx context.Context, defaults config.Cipher) (config.Cipher, error) {
	secret, err := v.kv.Get(ctx, v.path)
	if err != nil {
		return config.Cipher{}, fmt.Errorf("secret: read %s: %w", v.path, err)
	}

	out := defaults
	for key, dst := range map[string]*string{
		KeySalt:      &out.SaltHex,
		KeyIV:        &out.IVHex,
		KeyPublicKey: &out.PublicKey,
	} {
		raw, ok := secret.Data[key]
		if !ok || raw == nil {
			continue
		}
		s, ok := raw.(string)
		if !ok {
			return config.Cipher{}, fmt.Errorf("secret: %s/%s is %T, want string", v.path, key, raw)
		}
		*dst = s
	}

	version := 0
	if secret.VersionMetadata != nil {
		version = secret.VersionMetadata.Version
	}
	log.Debug().Str("path", v.path).Int("version", version).Msg("resolved cipher constants from vault")
	return out, nil
}
