// Package pluginprovider adapts a DialectProvider plugin session
// (internal/pluginhost) to the provider.Provider interface, so panels
// can browse a plugin-backed tree exactly like local/sftp/archive.
// Grounded on SPEC_FULL.md §4.1/§4.5 and the Open Question resolution
// recorded in DESIGN.md: entries whose name contains "/" are rejected
// and logged rather than silently flattened into a nested path, since
// the wire protocol has no way to distinguish an intentional nested
// path from a plugin bug.
package pluginprovider

import (
	"encoding/base64"
	"log/slog"
	"path"
	"strings"
	"time"

	"github.com/dumitru-stama/bark/internal/bkerr"
	"github.com/dumitru-stama/bark/internal/entry"
	"github.com/dumitru-stama/bark/internal/pluginhost"
	"github.com/dumitru-stama/bark/internal/provider"
)

// Provider bridges a connected pluginhost.Host to provider.Provider.
type Provider struct {
	host   *pluginhost.Host
	fields map[string]string
	name   string
	connected bool
}

// New wraps host, not yet connected; fields are the values collected
// from the plugin's dialog schema (internal/modal's PluginConnect
// rendering) and are resent with every request's Fields so a stateless
// plugin can re-derive its session without Bark caching credentials.
func New(host *pluginhost.Host, fields map[string]string) *Provider {
	return &Provider{host: host, fields: fields, name: host.Info().Name}
}

func (p *Provider) Info() provider.Info {
	return provider.Info{Name: p.name, Description: "plugin provider", Kind: "plugin", Icon: "P"}
}

func (p *Provider) IsConnected() bool { return p.connected }

func (p *Provider) Connect() error {
	resp, err := p.host.Call(pluginhost.Request{Op: "connect", Fields: p.fields})
	if err != nil {
		return bkerr.New(bkerr.Connection, "connect", p.name, err)
	}
	if resp.WantsClose() {
		return bkerr.New(bkerr.Connection, "connect", p.name, nil)
	}
	p.connected = true
	return nil
}

func (p *Provider) Disconnect() {
	_, _ = p.host.Call(pluginhost.Request{Op: "quit", Fields: p.fields})
	p.host.Close()
	p.connected = false
}

func (p *Provider) ListDirectory(dir string) ([]entry.Entry, error) {
	resp, err := p.host.Call(pluginhost.Request{Op: "list", Path: dir, Fields: p.fields})
	if err != nil {
		return nil, bkerr.New(bkerr.Plugin, "list_directory", dir, err)
	}
	var out []entry.Entry
	if dir != "/" {
		out = append(out, entry.Parent())
	}
	for _, re := range resp.Entries {
		if strings.Contains(re.Name, "/") {
			slog.Warn("pluginprovider: rejecting entry with '/' in name", "plugin", p.name, "name", re.Name)
			continue
		}
		out = append(out, entry.Entry{
			Name:          re.Name,
			Path:          path.Join(dir, re.Name),
			IsDir:         re.IsDir,
			Size:          re.Size,
			Modified:      time.Unix(re.Modified, 0),
			ModifiedKnown: re.Modified != 0,
		})
	}
	return out, nil
}

func (p *Provider) ReadFile(filePath string) ([]byte, error) {
	resp, err := p.host.Call(pluginhost.Request{Op: "read", Path: filePath, Fields: p.fields})
	if err != nil {
		return nil, bkerr.New(bkerr.Plugin, "read_file", filePath, err)
	}
	data, decErr := base64.StdEncoding.DecodeString(resp.Data)
	if decErr != nil {
		return nil, bkerr.New(bkerr.Plugin, "read_file", filePath, decErr)
	}
	return data, nil
}

func (p *Provider) WriteFile(filePath string, data []byte) error {
	req := pluginhost.Request{Op: "write", Path: filePath, Fields: p.fields, Data: base64.StdEncoding.EncodeToString(data)}
	if _, err := p.host.Call(req); err != nil {
		return bkerr.New(bkerr.Plugin, "write_file", filePath, err)
	}
	return nil
}

func (p *Provider) Delete(filePath string) error {
	if _, err := p.host.Call(pluginhost.Request{Op: "delete", Path: filePath, Fields: p.fields}); err != nil {
		return bkerr.New(bkerr.Plugin, "delete", filePath, err)
	}
	return nil
}

func (p *Provider) DeleteRecursive(filePath string) error {
	if _, err := p.host.Call(pluginhost.Request{Op: "delete_recursive", Path: filePath, Fields: p.fields}); err != nil {
		return bkerr.New(bkerr.Plugin, "delete_recursive", filePath, err)
	}
	return nil
}

func (p *Provider) Rename(from, to string) error {
	req := pluginhost.Request{Op: "rename", Path: from, Fields: mergeField(p.fields, "to", to)}
	if _, err := p.host.Call(req); err != nil {
		return bkerr.New(bkerr.Plugin, "rename", from, err)
	}
	return nil
}

func (p *Provider) Mkdir(dir string) error {
	if _, err := p.host.Call(pluginhost.Request{Op: "mkdir", Path: dir, Fields: p.fields}); err != nil {
		return bkerr.New(bkerr.Plugin, "mkdir", dir, err)
	}
	return nil
}

func (p *Provider) CopyFile(from, to string) error {
	req := pluginhost.Request{Op: "copy", Path: from, Fields: mergeField(p.fields, "to", to)}
	if _, err := p.host.Call(req); err != nil {
		return bkerr.New(bkerr.Plugin, "copy_file", from, err)
	}
	return nil
}

func (p *Provider) SetAttributes(filePath string, mtime *time.Time, mode *uint32) error {
	return nil // most plugin backends don't expose attribute setting; best-effort no-op
}

func (p *Provider) FreeSpace(string) (uint64, bool) { return 0, false }
func (p *Provider) Home() string                    { return "/" }
func (p *Provider) Normalize(filePath string) string { return path.Clean(filePath) }
func (p *Provider) Parent(filePath string) string {
	if filePath == "/" {
		return "/"
	}
	return path.Dir(filePath)
}
func (p *Provider) Join(base, name string) string      { return path.Join(base, name) }
func (p *Provider) ToLocalPath(string) (string, bool)   { return "", false }
func (p *Provider) FromLocalPath(string) (string, bool) { return "", false }

func (p *Provider) SetPassword(password string) error {
	p.fields["password"] = password
	return nil
}

func (p *Provider) ShortLabel() (string, bool) { return p.name, true }

func mergeField(fields map[string]string, key, value string) map[string]string {
	out := make(map[string]string, len(fields)+1)
	for k, v := range fields {
		out[k] = v
	}
	out[key] = value
	return out
}

var _ provider.Provider = (*Provider)(nil)
