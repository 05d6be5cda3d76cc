//go:build integration

package integration

import (
	"context"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
)

const (
	dockerImage  = "postgres:16-alpine"
	dockerDBUser = "livercare"
	dockerDBPass = "livercare"
	dockerDBName = "livercare_it"
)

// dockerDB is a disposable PostgreSQL server managed through the docker CLI.
type dockerDB struct {
	id  string
	dsn string
}

// startDockerDB launches the server on an ephemeral loopback port chosen by
// Docker and blocks until it answers queries.
func startDockerDB(ctx context.Context) (string, func(), error) {
	id, err := docker(ctx, "run", "-d", "--rm",
		"-p", "127.0.0.1::5432",
		"-e", "POSTGRES_USER="+dockerDBUser,
		"-e", "POSTGRES_PASSWORD="+dockerDBPass,
		"-e", "POSTGRES_DB="+dockerDBName,
		dockerImage,
	)
	if err != nil {
		return "", nil, err
	}
	d := &dockerDB{id: id}

	// "127.0.0.1:49153", possibly followed by an IPv6 line.
	mapped, err := docker(ctx, "port", id, "5432/tcp")
	if err != nil {
		d.stop()
		return "", nil, err
	}
	addr := strings.SplitN(mapped, "\n", 2)[0]
	d.dsn = fmt.Sprintf("postgres://%s:%s@%s/%s?sslmode=disable", dockerDBUser, dockerDBPass, addr, dockerDBName)

	if err := d.awaitReady(ctx, 45*time.Second); err != nil {
		d.stop()
		return "", nil, err
	}
	return d.dsn, d.stop, nil
}

func (d *dockerDB) stop() {
	_, _ = docker(context.Background(), "rm", "-f", d.id)
}

// awaitReady polls with a plain connection; the entrypoint restarts the
// server once after init, so one successful query is required.
func (d *dockerDB) awaitReady(ctx context.Context, limit time.Duration) error {
	ctx, cancel := context.WithTimeout(ctx, limit)
	defer cancel()

	tick := time.NewTicker(500 * time.Millisecond)
	defer tick.Stop()
	var lastErr error
	for {
		lastErr = d.ping(ctx)
		if lastErr == nil {
			return nil
		}
		select {
		case <-ctx.Done():
			return fmt.Errorf("postgres in %s not ready after %v: %w", d.id, limit, lastErr)
		case <-tick.C:
		}
	}
}

func (d *dockerDB) ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	conn, err := pgx.Connect(ctx, d.dsn)
	if err != nil {
		return err
	}
	defer conn.Close(ctx)
	var one int
	return conn.QueryRow(ctx, "SELECT 1").Scan(&one)
}

func docker(ctx context.Context, args ...string) (string, error) {
	out, err := exec.CommandContext(ctx, "docker", args...).CombinedOutput()
	if err != nil {
		return "", fmt.Errorf("docker %s: %w: %s", args[0], err, strings.TrimSpace(string(out)))
	}
	return strings.TrimSpace(string(out)), nil
}
