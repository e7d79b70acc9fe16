package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/viper"
	"github.com/spiceai/specs/pkg/api"
	specs_http "github.com/spiceai/specs/pkg/http"
	"github.com/spiceai/specs/pkg/spec"
	"github.com/spiceai/specs/pkg/specfile"
)

// specsBackend answers spec queries from local files or a running server
type specsBackend interface {
	ListSpecs(ctx context.Context) ([]*api.Spec, error)
	GetSpec(ctx context.Context, key string) (*api.Spec, error)
	Format(ctx context.Context, key string, value []byte) (string, error)
	Parse(ctx context.Context, key string, str string) ([]byte, error)
	Derive(ctx context.Context, key string, request *api.DeriveRequest) (*api.Spec, error)
	Combine(ctx context.Context, key string, request *api.CombineRequest) (*api.Spec, error)
}

func newBackend(ctx context.Context) (specsBackend, error) {
	if server := viper.GetString("server"); server != "" {
		client := specs_http.NewClient(server)
		if err := client.Health(ctx); err != nil {
			return nil, fmt.Errorf("failed to reach %s. is 'specs serve' running? %w", server, err)
		}
		return client, nil
	}

	specsConfig, err := loadConfiguration()
	if err != nil {
		return nil, err
	}

	set, err := loadSpecs(ctx, specsConfig)
	if err != nil {
		return nil, err
	}

	return &localBackend{specs: set}, nil
}

type localBackend struct {
	specs *specfile.SpecSet
}

func (b *localBackend) lookup(key string) (spec.Spec, error) {
	s, ok := b.specs.Get(key)
	if !ok {
		return nil, fmt.Errorf("spec '%s' not found", key)
	}
	return s, nil
}

func (b *localBackend) ListSpecs(ctx context.Context) ([]*api.Spec, error) {
	return api.NewSpecs(b.specs), nil
}

func (b *localBackend) GetSpec(ctx context.Context, key string) (*api.Spec, error) {
	s, err := b.lookup(key)
	if err != nil {
		return nil, err
	}
	return api.NewSpec(key, s), nil
}

func (b *localBackend) Format(ctx context.Context, key string, value []byte) (string, error) {
	s, err := b.lookup(key)
	if err != nil {
		return "", err
	}

	decoded, err := api.DecodeValue(s, value)
	if err != nil {
		return "", err
	}

	return s.AsStr(decoded)
}

func (b *localBackend) Parse(ctx context.Context, key string, str string) ([]byte, error) {
	s, err := b.lookup(key)
	if err != nil {
		return nil, err
	}

	value, err := s.AsVal(str)
	if err != nil {
		return nil, err
	}

	return api.EncodeValue(value)
}

func (b *localBackend) Derive(ctx context.Context, key string, request *api.DeriveRequest) (*api.Spec, error) {
	s, err := b.lookup(key)
	if err != nil {
		return nil, err
	}

	derived, err := spec.Derive(s, request.Method, request.How, request.Params())
	if err != nil {
		return nil, err
	}

	return api.NewSpec(key, derived), nil
}

func (b *localBackend) Combine(ctx context.Context, key string, request *api.CombineRequest) (*api.Spec, error) {
	s, err := b.lookup(key)
	if err != nil {
		return nil, err
	}

	other, err := b.lookup(request.Other)
	if err != nil {
		return nil, err
	}

	combined, err := spec.Combine(s, other, request.Method)
	if err != nil {
		return nil, err
	}

	return api.NewSpec(api.CombinedKey(key, request.Method), combined), nil
}
