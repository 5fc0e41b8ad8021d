// Package testdb starts a throwaway MySQL server for integration tests.
package testdb

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/docker/go-connections/nat"
	_ "github.com/go-sql-driver/mysql"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

const (
	Image    = "mysql:8.4"
	password = "password"
)

// MySQL starts (or reuses) a container named name with database dbName
// created, and returns an open handle to that database.
func MySQL(ctx context.Context, name, dbName string) (testcontainers.Container, *sql.DB, error) {
	port, err := nat.NewPort("tcp", "3306")
	if err != nil {
		return nil, nil, err
	}

	req := testcontainers.ContainerRequest{
		Name:         name,
		Image:        Image,
		ExposedPorts: []string{"3306/tcp"},
		Env: map[string]string{
			"MYSQL_ROOT_PASSWORD": password,
			"MYSQL_DATABASE":      dbName,
		},
		WaitingFor: wait.ForSQL(port, "mysql", func(host string, port nat.Port) string {
			return fmt.Sprintf("root:%s@tcp(%s:%s)/", password, host, port.Port())
		}),
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
		Reuse:            true,
	})
	if err != nil {
		return nil, nil, err
	}

	host, err := container.Host(ctx)
	if err != nil {
		return container, nil, err
	}
	mappedPort, err := container.MappedPort(ctx, port)
	if err != nil {
		return container, nil, err
	}

	db, err := sql.Open("mysql", fmt.Sprintf("root:%s@tcp(%s:%s)/%s?multiStatements=true", password, host, mappedPort.Port(), dbName))
	if err != nil {
		return container, nil, err
	}
	return container, db, db.PingContext(ctx)
}

// DropTables drops every table in the current database.
func DropTables(db *sql.DB) error {
	rows, err := db.Query("SHOW TABLES")
	if err != nil {
		return err
	}

	var tables []string
	for rows.Next() {
		var tableName string
		if err := rows.Scan(&tableName); err != nil {
			rows.Close()
			return err
		}
		tables = append(tables, tableName)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return err
	}

	for _, tableName := range tables {
		if _, err := db.Exec("DROP TABLE " + tableName); err != nil {
			return err
		}
	}
	return nil
}
