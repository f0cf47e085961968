package config

import (
	"bytes"
	"strings"
	"text/template"
)

var configFileTmpl = template.Must(template.New("config").Parse(`# Drydock Server configurations

# The name of the server instance.
name: "{{ .Name }}"

# The public base URL of the hosting site.
# Project, commit, issue, and pull-request links in webhook payloads are
# derived from it.
public_url: "{{ .PublicURL }}"

# The locale used to resolve notification message text.
locale: "{{ .Locale }}"

# Logging configuration.
log:
  # Log format to use. Valid values are "json", "logfmt", and "text".
  format: "{{ .Log.Format }}"
  # Time format for the log "timestamp" field.
  # Should be described in Golang's time format.
  time_format: "{{ .Log.TimeFormat }}"
  # Path to the log file. Leave empty to write to stderr.
  #path: "{{ .Log.Path }}"

# The admin HTTP API configuration.
http:
  # Enable the admin HTTP API.
  enabled: {{ .HTTP.Enabled }}

  # The address on which the HTTP server will listen.
  listen_addr: "{{ .HTTP.ListenAddr }}"

  # The path to the TLS private key.
  tls_key_path: "{{ .HTTP.TLSKeyPath }}"

  # The path to the TLS certificate.
  tls_cert_path: "{{ .HTTP.TLSCertPath }}"

# The stats server configuration.
stats:
  # Enable the stats server.
  enabled: {{ .Stats.Enabled }}

  # The address on which the stats server will listen.
  listen_addr: "{{ .Stats.ListenAddr }}"

# The database configuration.
db:
  # The database driver to use.
  # Valid values are "sqlite" and "postgres".
  driver: "{{ .DB.Driver }}"
  # The database data source name.
  # This is driver specific and can be a file path or connection string.
  data_source: "{{ .DB.DataSource }}"

# Outgoing webhook delivery configuration.
webhook:
  # The per-delivery request timeout.
  timeout: "{{ .Webhook.Timeout }}"

  # The maximum number of deliveries in flight at once.
  max_in_flight: {{ .Webhook.MaxInFlight }}

  # Restrict issue and pull-request events to subscriptions registered
  # for all events.
  enforce_scope: {{ .Webhook.EnforceScope }}

  # Permit deliveries to loopback and private network addresses.
  # Leave disabled outside development.
  allow_internal: {{ .Webhook.AllowInternal }}

  # Restrict delivery destinations to hosts matching at least one of
  # these glob patterns. Empty means any host.
  #allowed_hosts:
  #  - "*.example.com"
  {{- if .Webhook.AllowedHosts }}
  allowed_hosts:
  {{- range .Webhook.AllowedHosts }}
    - "{{ . }}"
  {{- end }}
  {{- end }}

# Cron jobs configuration.
jobs:
  # Remove webhook subscriptions whose project is gone.
  sweep_orphans: "{{ .Jobs.SweepOrphans }}"
`))

func newConfigFile(cfg *Config) string {
	if cfg == nil {
		cfg = DefaultConfig()
	}

	var b bytes.Buffer
	configFileTmpl.Execute(&b, cfg) // nolint: errcheck
	return strings.TrimSpace(b.String()) + "\n"
}
