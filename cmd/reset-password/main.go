package main

import (
	"flag"
	"log"
	"strings"

	"github.com/RespawnSociety/MesinKasir/internal/config"
	"github.com/RespawnSociety/MesinKasir/internal/model"
	"github.com/RespawnSociety/MesinKasir/internal/repository"
	"github.com/RespawnSociety/MesinKasir/pkg/database"
)

// Resets the admin password (-email) or a kasir PIN (-username) and revokes
// every token the account holds.
func main() {
	email := flag.String("email", "", "admin email whose password is reset")
	username := flag.String("username", "", "kasir username whose PIN is reset")
	secret := flag.String("secret", "", "new password or PIN")
	flag.Parse()

	if (*email == "") == (*username == "") {
		log.Fatal("Use exactly one of -email or -username")
	}
	if len(*secret) < 6 || strings.ContainsAny(*secret, " \t\r\n") {
		log.Fatal("-secret must be at least 6 characters without whitespace")
	}

	// 1. Load Env
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	// 2. Setup Database
	db := database.ConnectDB(cfg.DSN(), cfg.DBLogLevel)
	userRepo := repository.NewUserRepo(db)
	tokenRepo := repository.NewTokenRepo(db)

	// 3. Find account and hash the new secret
	var user *model.User
	if *email != "" {
		user, err = userRepo.FindByEmail(*email)
		if err == nil && user.Role != model.RoleAdmin {
			log.Fatalf("%s is not an admin account, use -username for kasir", *email)
		}
		if err == nil {
			err = user.SetPassword(*secret)
		}
	} else {
		user, err = userRepo.FindKasirByUsername(*username)
		if err == nil {
			err = user.SetPin(*secret)
		}
	}
	if err != nil {
		log.Fatalf("Failed to prepare account: %v", err)
	}

	// 4. Update
	if err := userRepo.Update(user); err != nil {
		log.Fatalf("Failed to update credentials in DB: %v", err)
	}
	if err := tokenRepo.DeleteByUser(user.ID); err != nil {
		log.Fatalf("Failed to revoke tokens: %v", err)
	}

	log.Printf("Credentials for %s (%s) have been reset", user.Email, user.Role)
}
