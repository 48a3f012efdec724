// Command prisonsphere-users administers staff accounts and the database outside the HTTP
// surface.
package main

import (
	"fmt"
	"os"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"prisonsphere_backend/internals/configs"
	database "prisonsphere_backend/internals/databases"
)

func openDB() (*gorm.DB, error) {
	database.ConnectDB()
	return database.DB, nil
}

func main() {
	configs.LoadEnv()
	defer func() { _ = zap.L().Sync() }()

	root := newRootCmd(openDB, os.Stdout)
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		database.Close()
		os.Exit(1)
	}
	database.Close()
}
