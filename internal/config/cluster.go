// Package config parses the client's cluster configuration file: a flat
// key=value text format naming each storage node's address.
package config

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/FairForge/chunkstore/internal/chunkerr"
)

// NodeConfig is one storage node's network address.
type NodeConfig struct {
	ID   int32
	IP   string
	Port int
}

// Addr returns the dialable host:port for this node.
func (n NodeConfig) Addr() string {
	return fmt.Sprintf("%s:%d", n.IP, n.Port)
}

// ClusterConfig lists every storage node a client round addresses, in
// ascending node ID order.
type ClusterConfig struct {
	Nodes []NodeConfig
}

// Load reads a key=value cluster configuration file. Recognized keys are
// serverK_ip and serverK_port for K = 1, 2, 3, ...; any other key is ignored
// so the file can carry unrelated operator notes. Lines starting with '#' and
// blank lines are skipped.
func Load(path string) (*ClusterConfig, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, chunkerr.NewIOError("open", path, err)
	}
	defer f.Close()
	return Parse(f)
}

// Parse reads a ClusterConfig from r, the same format Load expects.
func Parse(r io.Reader) (*ClusterConfig, error) {
	ips := make(map[int]string)
	ports := make(map[int]int)

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		key, value, ok := strings.Cut(line, "=")
		if !ok {
			return nil, chunkerr.NewConfigError(line, "expected key=value")
		}
		key = strings.TrimSpace(key)
		value = strings.TrimSpace(value)

		id, field, ok := splitServerKey(key)
		if !ok {
			continue
		}
		switch field {
		case "ip":
			ips[id] = value
		case "port":
			p, err := strconv.Atoi(value)
			if err != nil {
				return nil, chunkerr.NewConfigError(key, "port must be an integer")
			}
			ports[id] = p
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, chunkerr.Wrap(err, "scan cluster config")
	}

	seen := make(map[int]bool, len(ips)+len(ports))
	for id := range ips {
		seen[id] = true
	}
	for id := range ports {
		seen[id] = true
	}
	ids := make([]int, 0, len(seen))
	for id := range seen {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	cfg := &ClusterConfig{}
	for _, id := range ids {
		ip, ok := ips[id]
		if !ok {
			return nil, chunkerr.NewConfigError(fmt.Sprintf("server%d_ip", id), "missing")
		}
		port, ok := ports[id]
		if !ok {
			return nil, chunkerr.NewConfigError(fmt.Sprintf("server%d_port", id), "missing")
		}
		cfg.Nodes = append(cfg.Nodes, NodeConfig{ID: int32(id - 1), IP: ip, Port: port})
	}
	if len(cfg.Nodes) == 0 {
		return nil, chunkerr.NewConfigError("server1_ip", "no nodes configured")
	}
	return cfg, nil
}

// splitServerKey parses "serverK_ip" / "serverK_port" into (K, field, true),
// or returns ok=false for anything else.
func splitServerKey(key string) (id int, field string, ok bool) {
	if !strings.HasPrefix(key, "server") {
		return 0, "", false
	}
	rest := strings.TrimPrefix(key, "server")
	idPart, field, cut := strings.Cut(rest, "_")
	if !cut {
		return 0, "", false
	}
	n, err := strconv.Atoi(idPart)
	if err != nil || n < 1 {
		return 0, "", false
	}
	if field != "ip" && field != "port" {
		return 0, "", false
	}
	return n, field, true
}
