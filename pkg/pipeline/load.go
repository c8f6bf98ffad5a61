package pipeline

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/aerolab/skewt/pkg/cache"
	"github.com/aerolab/skewt/pkg/errors"
	skewtio "github.com/aerolab/skewt/pkg/io"
	"github.com/aerolab/skewt/pkg/observability"
	"github.com/aerolab/skewt/pkg/sounding"
	"github.com/aerolab/skewt/pkg/sounding/netcdf"
)

// Load reads all configured inputs and returns the profiles in input order.
// The first profile is the primary one. File format is chosen by extension:
// .nc and .nc4 load through the NetCDF reader, everything else is parsed as
// sounding JSON. An inline Document is loaded after the file inputs.
func (r *Runner) Load(ctx context.Context, opts Options) ([]*sounding.Profile, error) {
	if err := opts.ValidateForLoad(); err != nil {
		return nil, err
	}
	r.applyLogger(&opts)

	var profiles []*sounding.Profile
	for _, path := range opts.Inputs {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		var (
			p   *sounding.Profile
			err error
		)
		switch strings.ToLower(filepath.Ext(path)) {
		case ".nc", ".nc4":
			p, err = r.loadNetCDF(ctx, path, opts)
		default:
			p, err = skewtio.ImportJSON(path)
		}
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidProfile, err, "load %s", path)
		}

		opts.Logger.Debug("loaded profile",
			"path", path,
			"site", p.Site,
			"samples", len(p.Samples))
		profiles = append(profiles, p)
	}

	if len(opts.Document) > 0 {
		p, err := skewtio.ReadJSON(bytes.NewReader(opts.Document))
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidProfile, err, "load inline document")
		}
		profiles = append(profiles, p)
	}

	return profiles, nil
}

// loadNetCDF parses a NetCDF sounding, caching the parsed profile keyed by
// the file's content hash. Parsing is the expensive part of a NetCDF load,
// so a hit skips it while a changed file naturally misses.
func (r *Runner) loadNetCDF(ctx context.Context, path string, opts Options) (*sounding.Profile, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	key := r.Keyer.ProfileKey(cache.Hash(raw))

	if !opts.Refresh {
		if data, ok, err := r.Cache.Get(ctx, key); err == nil && ok {
			var p sounding.Profile
			if json.Unmarshal(data, &p) == nil {
				observability.Cache().OnCacheHit(ctx, "profile")
				return &p, nil
			}
		}
		observability.Cache().OnCacheMiss(ctx, "profile")
	}

	p, err := netcdf.Load(path)
	if err != nil {
		return nil, err
	}
	if data, err := json.Marshal(p); err == nil {
		if err := r.Cache.Set(ctx, key, data, cache.TTLProfile); err == nil {
			observability.Cache().OnCacheSet(ctx, "profile", len(data))
		}
	}
	return p, nil
}

// ProfileHash computes the content hash of a profile set, used to key the
// scene and artifact caches.
func ProfileHash(profiles []*sounding.Profile) string {
	data, _ := json.Marshal(profiles)
	return cache.Hash(data)
}
