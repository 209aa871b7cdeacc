package iis

import (
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/abdidvp/iisaudit/internal/domain"
)

const webConfigName = "web.config"

type webConfigFile struct {
	XMLName           xml.Name                  `xml:"configuration"`
	ConnectionStrings *connectionStringsSection `xml:"connectionStrings"`
	Locations         []locationElement         `xml:"location"`
}

type locationElement struct {
	Path              string                    `xml:"path,attr"`
	ConnectionStrings *connectionStringsSection `xml:"connectionStrings"`
}

type connectionStringsSection struct {
	XMLName      xml.Name
	ConfigSource string           `xml:"configSource,attr"`
	Items        []collectionItem `xml:",any"`
}

type collectionItem struct {
	XMLName          xml.Name
	Name             string `xml:"name,attr"`
	ConnectionString string `xml:"connectionString,attr"`
}

// ConnectionStrings returns the connectionStrings/add entries that the
// site's root web.config leaves in effect, in document order.
// A site without a web.config has no entries.
func (s *SiteStore) ConnectionStrings(ctx context.Context, site domain.Site) ([]domain.ConnectionStringEntry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if site.PhysicalPath == "" {
		return nil, fmt.Errorf("site %q has no root virtual directory", site.Name)
	}

	info, err := os.Stat(site.PhysicalPath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("physical path %s does not exist", site.PhysicalPath)
		}
		return nil, err
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("physical path %s is not a directory", site.PhysicalPath)
	}

	path := filepath.Join(site.PhysicalPath, webConfigName)
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}

	var cfg webConfigFile
	if err := decodeXML(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}

	sections := []*connectionStringsSection{cfg.ConnectionStrings}
	for _, loc := range cfg.Locations {
		if loc.Path == "" || loc.Path == "." {
			sections = append(sections, loc.ConnectionStrings)
		}
	}

	var entries []domain.ConnectionStringEntry
	for _, sec := range sections {
		if sec == nil {
			continue
		}
		if sec.ConfigSource != "" {
			sec, err = loadConfigSource(site.PhysicalPath, sec)
			if err != nil {
				return nil, err
			}
		}
		entries = applyCollection(entries, sec.Items)
	}

	return entries, nil
}

// loadConfigSource reads a connectionStrings section moved into a separate
// file. The file path is relative to the web.config directory.
func loadConfigSource(dir string, sec *connectionStringsSection) (*connectionStringsSection, error) {
	if len(sec.Items) > 0 {
		return nil, fmt.Errorf("connectionStrings: configSource %q cannot be combined with child elements", sec.ConfigSource)
	}

	rel := filepath.FromSlash(strings.ReplaceAll(sec.ConfigSource, `\`, "/"))
	if filepath.IsAbs(rel) || filepath.VolumeName(rel) != "" || !filepath.IsLocal(rel) {
		return nil, fmt.Errorf("connectionStrings: configSource %q must be a relative path inside the site directory", sec.ConfigSource)
	}

	path := filepath.Join(dir, rel)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading configSource: %w", err)
	}

	var external connectionStringsSection
	if err := decodeXML(data, &external); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	if external.XMLName.Local != "connectionStrings" {
		return nil, fmt.Errorf("parsing %s: root element is <%s>, want <connectionStrings>", path, external.XMLName.Local)
	}
	if external.ConfigSource != "" {
		return nil, fmt.Errorf("parsing %s: nested configSource is not allowed", path)
	}

	return &external, nil
}

// applyCollection applies add/remove/clear items in order.
func applyCollection(entries []domain.ConnectionStringEntry, items []collectionItem) []domain.ConnectionStringEntry {
	for _, it := range items {
		switch it.XMLName.Local {
		case "add":
			entries = append(entries, domain.ConnectionStringEntry{
				Name:             it.Name,
				ConnectionString: it.ConnectionString,
			})
		case "remove":
			kept := entries[:0]
			for _, e := range entries {
				if e.Name != it.Name {
					kept = append(kept, e)
				}
			}
			entries = kept
		case "clear":
			entries = entries[:0]
		}
	}
	return entries
}
