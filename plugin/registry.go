package plugin

import (
	"fmt"

	Ks "github.com/maroda/kinetic/server"
)

// Sources is a global map of DatasetSource factories keyed by config type.
var Sources = map[string]func(cfg Ks.SourceConfig) (DatasetSource, error){
	"json": func(cfg Ks.SourceConfig) (DatasetSource, error) {
		return NewJSONSource(cfg.Path), nil
	},
	"csv": func(cfg Ks.SourceConfig) (DatasetSource, error) {
		return NewCSVSource(cfg.Path), nil
	},
	"sql": func(cfg Ks.SourceConfig) (DatasetSource, error) {
		src, err := NewSQLSource(cfg.Driver, cfg.DSN)
		if err != nil {
			return nil, err
		}
		return src, nil
	},
	"badger": func(cfg Ks.SourceConfig) (DatasetSource, error) {
		src, err := NewBadgerSource(cfg.Path)
		if err != nil {
			return nil, err
		}
		return src, nil
	},
	"http": func(cfg Ks.SourceConfig) (DatasetSource, error) {
		return NewHTTPSource(cfg.URL), nil
	},
}

func SourceLookup(cfg Ks.SourceConfig) (DatasetSource, error) {
	factory, ok := Sources[cfg.Type]
	if !ok {
		return nil, fmt.Errorf("unknown dataset source: %s", cfg.Type)
	}
	return factory(cfg)
}
