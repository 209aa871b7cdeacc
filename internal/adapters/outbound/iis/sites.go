package iis

import (
	"bytes"
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"golang.org/x/net/html/charset"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/unicode"

	"github.com/abdidvp/iisaudit/internal/domain"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// SiteStore implements domain.SiteEnumerator and domain.ConnectionStringQuery
// by reading IIS configuration files directly.
type SiteStore struct {
	appHostPath string
	lookupEnv   func(string) (string, bool)
}

// New creates a SiteStore reading the given applicationHost.config path.
// %VAR% references in the path are expanded.
func New(appHostPath string) *SiteStore {
	if appHostPath == "" {
		appHostPath = domain.DefaultApplicationHostPath
	}
	return &SiteStore{
		appHostPath: appHostPath,
		lookupEnv:   os.LookupEnv,
	}
}

// WithLookupEnv replaces the environment lookup, mainly for tests.
func (s *SiteStore) WithLookupEnv(lookup func(string) (string, bool)) *SiteStore {
	s.lookupEnv = lookup
	return s
}

// ApplicationHostPath returns the expanded path of applicationHost.config.
func (s *SiteStore) ApplicationHostPath() string {
	return expandEnv(s.appHostPath, s.lookupEnv)
}

type applicationHostFile struct {
	XMLName xml.Name      `xml:"configuration"`
	Sites   []siteElement `xml:"system.applicationHost>sites>site"`
}

type siteElement struct {
	Name         string               `xml:"name,attr"`
	ID           string               `xml:"id,attr"`
	Applications []applicationElement `xml:"application"`
}

type applicationElement struct {
	Path               string                    `xml:"path,attr"`
	VirtualDirectories []virtualDirectoryElement `xml:"virtualDirectory"`
}

type virtualDirectoryElement struct {
	Path         string `xml:"path,attr"`
	PhysicalPath string `xml:"physicalPath,attr"`
}

// Sites lists every site of applicationHost.config in document order.
func (s *SiteStore) Sites(ctx context.Context) ([]domain.Site, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	path := s.ApplicationHostPath()
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	var cfg applicationHostFile
	if err := decodeXML(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}

	sites := make([]domain.Site, 0, len(cfg.Sites))
	for _, el := range cfg.Sites {
		id, err := strconv.ParseInt(el.ID, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("parsing %s: site %q has invalid id %q", path, el.Name, el.ID)
		}
		sites = append(sites, domain.Site{
			Name:         el.Name,
			ID:           id,
			PhysicalPath: expandEnv(rootPhysicalPath(el), s.lookupEnv),
		})
	}

	return sites, nil
}

// rootPhysicalPath returns the physical path of virtual directory "/" of
// application "/", or "" when the site has none.
func rootPhysicalPath(site siteElement) string {
	for _, app := range site.Applications {
		if app.Path != "/" {
			continue
		}
		for _, vdir := range app.VirtualDirectories {
			if vdir.Path == "/" {
				return vdir.PhysicalPath
			}
		}
	}
	return ""
}

// decodeXML unmarshals IIS configuration, honouring the declared encoding.
// UTF-16 documents must start with a byte order mark.
func decodeXML(data []byte, v any) error {
	data, transcoded, err := toUTF8(data)
	if err != nil {
		return err
	}

	dec := xml.NewDecoder(bytes.NewReader(data))
	dec.CharsetReader = func(label string, input io.Reader) (io.Reader, error) {
		// Already UTF-8; the declaration still names the file's encoding.
		if transcoded && strings.HasPrefix(strings.ToLower(label), "utf-16") {
			return input, nil
		}
		return charset.NewReaderLabel(label, input)
	}
	if err := dec.Decode(v); err != nil {
		if err == io.EOF {
			return fmt.Errorf("empty document")
		}
		return err
	}
	return nil
}

// toUTF8 strips a UTF-8 byte order mark and transcodes UTF-16 documents
// identified by theirs. The bool reports whether transcoding happened.
func toUTF8(data []byte) ([]byte, bool, error) {
	var enc encoding.Encoding
	switch {
	case bytes.HasPrefix(data, []byte{0xFF, 0xFE}):
		enc = unicode.UTF16(unicode.LittleEndian, unicode.ExpectBOM)
	case bytes.HasPrefix(data, []byte{0xFE, 0xFF}):
		enc = unicode.UTF16(unicode.BigEndian, unicode.ExpectBOM)
	default:
		return bytes.TrimPrefix(data, utf8BOM), false, nil
	}

	out, err := enc.NewDecoder().Bytes(data)
	if err != nil {
		return nil, false, fmt.Errorf("decoding utf-16: %w", err)
	}
	return out, true, nil
}
