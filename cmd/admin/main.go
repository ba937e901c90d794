// Command admin creates officer accounts from the command line. Officer
// registration is not exposed over the public API.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/anilvs/casetrack/internal/config"
	"github.com/anilvs/casetrack/internal/migrate"
	"github.com/anilvs/casetrack/internal/model"
	"github.com/anilvs/casetrack/internal/repository/postgres"
	"github.com/anilvs/casetrack/internal/service"
)

func main() {
	var (
		name       = flag.String("name", "", "officer full name")
		email      = flag.String("email", "", "login email")
		password   = flag.String("password", "", "initial password")
		badge      = flag.String("badge", "", "badge number")
		department = flag.String("department", "", "department")
		district   = flag.String("district", "", "district")
		phone      = flag.String("phone", "", "contact phone")
	)
	flag.Parse()

	if err := run(*name, *email, *password, *badge, *department, *district, *phone); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func run(name, email, password, badge, department, district, phone string) error {
	if name == "" || email == "" || password == "" || badge == "" {
		return errors.New("-name, -email, -password and -badge are required")
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := migrate.Up(ctx, cfg.DatabaseDSN); err != nil {
		return err
	}
	db, err := postgres.New(ctx, cfg.DatabaseDSN)
	if err != nil {
		return err
	}
	defer db.Close()

	auth := service.NewAuthService(postgres.NewUserRepo(db), nil, 0, nil)
	u, err := auth.Register(ctx, service.RegisterUser{
		Name:        name,
		Email:       email,
		Phone:       phone,
		District:    district,
		Password:    password,
		Role:        model.RoleOfficer,
		BadgeNumber: badge,
		Department:  department,
	})
	if err != nil {
		return err
	}

	fmt.Printf("officer created: %s (%s, badge %s)\n", u.ID, u.Email, u.BadgeNumber)
	return nil
}
