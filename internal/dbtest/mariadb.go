// Package dbtest starts disposable database containers for the
// integration tests and the devdb command. Requires a local Docker
// daemon.
package dbtest

import (
	"context"
	"fmt"
	"time"

	"github.com/docker/go-connections/nat"
	_ "github.com/go-sql-driver/mysql"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/fitsync/fitsync/internal/config"
)

const (
	mariadbImage    = "mariadb:11"
	mariadbDatabase = "fitsync"
	mariadbUser     = "fitsync"
	mariadbPassword = "fitsync-test"
)

// MariaDB wraps a running MariaDB container with its mapped address
type MariaDB struct {
	Container testcontainers.Container
	Host      string
	Port      string
}

// StartMariaDB launches a MariaDB container and waits until it accepts
// SQL connections.
func StartMariaDB(ctx context.Context) (*MariaDB, error) {
	tcpPort, err := nat.NewPort("tcp", "3306")
	if err != nil {
		return nil, err
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        mariadbImage,
			ExposedPorts: []string{string(tcpPort)},
			Env: map[string]string{
				"MARIADB_ROOT_PASSWORD": mariadbPassword,
				"MARIADB_DATABASE":      mariadbDatabase,
				"MARIADB_USER":          mariadbUser,
				"MARIADB_PASSWORD":      mariadbPassword,
			},
			WaitingFor: wait.ForSQL(tcpPort, "mysql", func(host string, port nat.Port) string {
				return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s", mariadbUser, mariadbPassword, host, port.Port(), mariadbDatabase)
			}).WithStartupTimeout(90 * time.Second),
		},
		Started: true,
	})
	if err != nil {
		return nil, err
	}

	host, err := container.Host(ctx)
	if err != nil {
		_ = container.Terminate(ctx)
		return nil, err
	}

	mappedPort, err := container.MappedPort(ctx, tcpPort)
	if err != nil {
		_ = container.Terminate(ctx)
		return nil, err
	}

	return &MariaDB{
		Container: container,
		Host:      host,
		Port:      mappedPort.Port(),
	}, nil
}

// Config returns service configuration pointing at the container
func (m *MariaDB) Config() *config.Config {
	return &config.Config{
		Port:              "3000",
		Env:               "development",
		JWTSecret:         "dbtest-secret",
		CORSOrigin:        "*",
		DBType:            "mariadb",
		DatabaseURL:       mariadbDatabase,
		DBHost:            m.Host,
		DBPort:            m.Port,
		DBUser:            mariadbUser,
		DBPassword:        mariadbPassword,
		DBConnectionLimit: 5,
		LogLevel:          "info",
	}
}

// Terminate stops and removes the container
func (m *MariaDB) Terminate(ctx context.Context) error {
	if m.Container == nil {
		return nil
	}
	return m.Container.Terminate(ctx)
}
