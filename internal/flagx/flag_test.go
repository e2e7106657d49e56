package flagx

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

var (
	serverFlags = []string{"-a", "-d", "-s", "-t", "-transport", "-log-format", "-log-level"}
	clientFlags = []string{"-a", "-db", "-ttl", "-log-level"}
)

func TestFilterArgs(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		allowed []string
		want    []string
	}{
		{
			name:    "server flags kept, config dropped",
			args:    []string{"-c", "server.json", "-a", ":8080", "-d", "postgres://u@db/items"},
			allowed: serverFlags,
			want:    []string{"-a", ":8080", "-d", "postgres://u@db/items"},
		},
		{
			name:    "server equals forms",
			args:    []string{"-transport=https", "-log-format=json", "-s=secret"},
			allowed: serverFlags,
			want:    []string{"-transport=https", "-log-format=json", "-s=secret"},
		},
		{
			name:    "client flags mixed with config",
			args:    []string{"-db", "/tmp/itemkeeper.db", "-config=client.json", "-ttl", "90"},
			allowed: clientFlags,
			want:    []string{"-db", "/tmp/itemkeeper.db", "-ttl", "90"},
		},
		{
			name:    "server-only flag ignored by client",
			args:    []string{"-a", "https://keeper:8443", "-transport", "grpc", "-log-level", "debug"},
			allowed: clientFlags,
			want:    []string{"-a", "https://keeper:8443", "-log-level", "debug"},
		},
		{
			name:    "negative number is not a value",
			args:    []string{"-ttl", "-5"},
			allowed: clientFlags,
			want:    []string{"-ttl"},
		},
		{
			name:    "negative number in equals form",
			args:    []string{"-ttl=-5"},
			allowed: clientFlags,
			want:    []string{"-ttl=-5"},
		},
		{
			name:    "trailing flag without value",
			args:    []string{"-a", ":8080", "-log-level"},
			allowed: serverFlags,
			want:    []string{"-a", ":8080", "-log-level"},
		},
		{
			name:    "repeated flag keeps order",
			args:    []string{"-log-level", "info", "-log-level", "warn"},
			allowed: clientFlags,
			want:    []string{"-log-level", "info", "-log-level", "warn"},
		},
		{
			name:    "positional arguments dropped",
			args:    []string{"list", "-db", "x.db", "extra"},
			allowed: clientFlags,
			want:    []string{"-db", "x.db"},
		},
		{
			name:    "no args",
			args:    nil,
			allowed: serverFlags,
			want:    []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FilterArgs(tt.args, tt.allowed))
		})
	}
}

func TestJsonConfigFlags(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"short form among server flags", []string{"-a", ":8080", "-c", "/etc/itemkeeper/server.json", "-t", "30m"}, "/etc/itemkeeper/server.json"},
		{"long equals form among client flags", []string{"-db", "x.db", "--config=client.json"}, "client.json"},
		{"single dash long form", []string{"-config", "client.json", "-ttl", "60"}, "client.json"},
		{"last occurrence wins", []string{"-c", "first.json", "-config", "second.json"}, "second.json"},
		{"absent", []string{"-a", ":8080", "-log-level", "debug"}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, JsonConfigFlags(tt.args))
		})
	}
}
