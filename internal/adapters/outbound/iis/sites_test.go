package iis_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/abdidvp/iisaudit/internal/adapters/outbound/iis"
	"github.com/abdidvp/iisaudit/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/unicode"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func envFrom(vars map[string]string) func(string) (string, bool) {
	return func(name string) (string, bool) {
		v, ok := vars[name]
		return v, ok
	}
}

const appHostTemplate = `<?xml version="1.0" encoding="UTF-8"?>
<configuration>
  <system.applicationHost>
    <applicationPools>
      <add name="DefaultAppPool" />
    </applicationPools>
    <sites>
      <site name="Default Web Site" id="1" serverAutoStart="true">
        <application path="/" applicationPool="DefaultAppPool">
          <virtualDirectory path="/" physicalPath="%SITES%/default" />
        </application>
        <bindings>
          <binding protocol="http" bindingInformation="*:80:" />
        </bindings>
      </site>
      <site name="Shop" id="7">
        <application path="/legacy">
          <virtualDirectory path="/" physicalPath="/somewhere/else" />
        </application>
        <application path="/">
          <virtualDirectory path="/images" physicalPath="/images" />
          <virtualDirectory path="/" physicalPath="%SITES%/shop" />
        </application>
      </site>
      <site name="Broken" id="3" />
      <siteDefaults>
        <logFile directory="%SystemDrive%\inetpub\logs\LogFiles" />
      </siteDefaults>
    </sites>
  </system.applicationHost>
</configuration>
`

func TestSiteStore_SitesInDocumentOrder(t *testing.T) {
	dir := t.TempDir()
	appHost := filepath.Join(dir, "applicationHost.config")
	writeFile(t, appHost, appHostTemplate)

	store := iis.New(appHost).WithLookupEnv(envFrom(map[string]string{"SITES": "/srv"}))
	sites, err := store.Sites(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []domain.Site{
		{Name: "Default Web Site", ID: 1, PhysicalPath: "/srv/default"},
		{Name: "Shop", ID: 7, PhysicalPath: "/srv/shop"},
		{Name: "Broken", ID: 3, PhysicalPath: ""},
	}, sites)
}

func TestSiteStore_ExpandsApplicationHostPath(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "inetsrv", "applicationHost.config"), appHostTemplate)

	store := iis.New("%CFGROOT%/inetsrv/applicationHost.config").
		WithLookupEnv(envFrom(map[string]string{"CFGROOT": dir, "SITES": "/srv"}))

	assert.Equal(t, dir+"/inetsrv/applicationHost.config", store.ApplicationHostPath())
	sites, err := store.Sites(context.Background())
	require.NoError(t, err)
	assert.Len(t, sites, 3)
}

func TestSiteStore_NoSites(t *testing.T) {
	dir := t.TempDir()
	appHost := filepath.Join(dir, "applicationHost.config")
	writeFile(t, appHost, `<configuration><system.applicationHost><sites /></system.applicationHost></configuration>`)

	sites, err := iis.New(appHost).Sites(context.Background())
	require.NoError(t, err)
	assert.Empty(t, sites)
}

func TestSiteStore_BOMPrefixed(t *testing.T) {
	dir := t.TempDir()
	appHost := filepath.Join(dir, "applicationHost.config")
	writeFile(t, appHost, "\xEF\xBB\xBF"+appHostTemplate)

	sites, err := iis.New(appHost).WithLookupEnv(envFrom(nil)).Sites(context.Background())
	require.NoError(t, err)
	require.Len(t, sites, 3)
	assert.Equal(t, "%SITES%/default", sites[0].PhysicalPath, "unknown variables stay as-is")
}

func TestSiteStore_UTF16BE(t *testing.T) {
	dir := t.TempDir()
	appHost := filepath.Join(dir, "applicationHost.config")
	doc := strings.Replace(appHostTemplate, `encoding="UTF-8"`, `encoding="UTF-16"`, 1)
	writeFile(t, appHost, utf16File(t, unicode.BigEndian, doc))

	sites, err := iis.New(appHost).WithLookupEnv(envFrom(map[string]string{"SITES": "/srv"})).Sites(context.Background())
	require.NoError(t, err)
	require.Len(t, sites, 3)
	assert.Equal(t, "Default Web Site", sites[0].Name)
	assert.Equal(t, "/srv/shop", sites[1].PhysicalPath)
}

func TestSiteStore_MissingFile(t *testing.T) {
	_, err := iis.New(filepath.Join(t.TempDir(), "nope.config")).Sites(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "nope.config")
}

func TestSiteStore_MalformedFile(t *testing.T) {
	dir := t.TempDir()
	appHost := filepath.Join(dir, "applicationHost.config")
	writeFile(t, appHost, `<configuration><system.applicationHost><sites>`)

	_, err := iis.New(appHost).Sites(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing")
}

func TestSiteStore_InvalidID(t *testing.T) {
	dir := t.TempDir()
	appHost := filepath.Join(dir, "applicationHost.config")
	writeFile(t, appHost, `<configuration><system.applicationHost><sites><site name="X" id="abc" /></sites></system.applicationHost></configuration>`)

	_, err := iis.New(appHost).Sites(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), `site "X" has invalid id "abc"`)
}

func TestSiteStore_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := iis.New("unused").Sites(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}
