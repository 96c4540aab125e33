package service

import (
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v2"
)

// LoadWatchlistFile читает статический watchlist:
//
//	symbols:
//	  - BTCUSDT
//	  - ETHUSDT
func LoadWatchlistFile(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "read watchlist file")
	}

	var doc struct {
		Symbols []string `yaml:"symbols"`
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, errors.Wrap(err, "parse watchlist file")
	}
	if len(doc.Symbols) == 0 {
		return nil, errors.New("watchlist file has no symbols")
	}
	return doc.Symbols, nil
}
