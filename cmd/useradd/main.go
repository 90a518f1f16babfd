// Command useradd creates, enables or disables a user of the token service.
//
//	useradd -u alice                      # prompts for a password
//	useradd -u alice -deactivate
//	useradd -driver sqlite -d file:tk.db -u alice
//
// Database settings are read exactly like the server reads them.
package main

import (
	"bufio"
	"context"
	"log"
	"os"

	"github.com/dmitrijs2005/tokenkeeper/internal/admin"
	"github.com/dmitrijs2005/tokenkeeper/internal/server/config"
	"github.com/dmitrijs2005/tokenkeeper/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/tokenkeeper/internal/server/services"
	"github.com/dmitrijs2005/tokenkeeper/internal/timex"
)

func main() {
	opts, err := admin.ParseArgs(os.Args[1:])
	if err != nil {
		log.Fatalf("useradd: %v", err)
	}

	ctx := context.Background()
	cfg := config.LoadConfig()

	rm, err := repomanager.NewSQLRepositoryManager(cfg.DatabaseDriver)
	if err != nil {
		log.Fatalf("useradd: %v", err)
	}

	db, err := repomanager.OpenDB(ctx, cfg.DatabaseDriver, cfg.DatabaseDSN)
	if err != nil {
		log.Fatalf("useradd: %v", err)
	}
	defer db.Close()

	if err := rm.RunMigrations(ctx, db); err != nil {
		log.Printf("useradd: %v", err)
		return
	}

	us := services.NewUserService(db, rm, timex.SystemClock{})
	reader := bufio.NewReader(os.Stdin)
	password := func() (string, error) { return admin.GetPassword(reader, os.Stderr) }

	if err := admin.Run(ctx, us, opts, password, os.Stdout); err != nil {
		log.Printf("useradd: %v", err)
	}
}
