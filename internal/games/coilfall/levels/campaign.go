package levels

import (
	"embed"
	"fmt"
	"io/fs"
	"sort"

	"github.com/vovakirdan/tui-coilfall/internal/games/coilfall/levels/formats"
)

//go:embed data/*.yaml
var campaignFS embed.FS

// Campaign returns the levels bundled with the binary, sorted by ID.
// Unlike directory loading this does not skip broken files: a bad
// embedded level is a packaging mistake and should surface.
func Campaign() ([]Level, error) {
	entries, err := fs.ReadDir(campaignFS, "data")
	if err != nil {
		return nil, fmt.Errorf("reading campaign: %w", err)
	}

	lvls := make([]Level, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		data, err := fs.ReadFile(campaignFS, "data/"+entry.Name())
		if err != nil {
			return nil, fmt.Errorf("reading campaign level %s: %w", entry.Name(), err)
		}

		parsed, err := formats.ParseYAML(data)
		if err != nil {
			return nil, fmt.Errorf("parsing campaign level %s: %w", entry.Name(), err)
		}

		level := toLevel(parsed, "embedded:"+entry.Name())
		if err := level.Validate(); err != nil {
			return nil, fmt.Errorf("validating campaign level %s: %w", entry.Name(), err)
		}
		lvls = append(lvls, level)
	}

	sort.Slice(lvls, func(i, j int) bool {
		return lvls[i].ID < lvls[j].ID
	})

	return lvls, nil
}
