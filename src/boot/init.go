package boot

import (
	"boxoffice/src/admin"
	"boxoffice/src/db"
	"boxoffice/src/lib"
	"boxoffice/src/models"
	"boxoffice/src/pagination"
	"fmt"
	"log"
)

// listingTables are the tables served through cursor-paginated listings.
// Each gets a composite index matching the listing order.
var listingTables = []string{"tickets", "orders", "customers"}

func InitDb() {
	con := db.GetDb()
	err := con.AutoMigrate(
		&models.Venue{},
		&models.Event{},
		&models.TicketType{},
		&models.InventorySlot{},
		&models.Customer{},
		&models.Order{},
		&models.OrderItem{},
		&models.Ticket{},
	)
	if err != nil {
		log.Fatalf("Error during migration: %s\n", err.Error())
	}
	for _, table := range listingTables {
		stmt := fmt.Sprintf(
			"CREATE INDEX IF NOT EXISTS %[1]s_created_at_id_idx ON %[1]s (created_at DESC, id DESC)",
			table,
		)
		if err := con.Exec(stmt).Error; err != nil {
			log.Printf("Error creating listing index for %s: %s\n", table, err.Error())
		}
	}
}

func InitScheduler() {
	sched, err := lib.GetScheduler()
	if err != nil {
		log.Fatalf("Error initializing scheduler: %s\n", err.Error())
	}
	if _, err := lib.CreateCronJob(admin.RefreshCounts, pagination.CountTTL, db.GetDb()); err != nil {
		log.Printf("Error scheduling count refresh: %s\n", err.Error())
	}
	sched.Start()
}

func StopScheduler() error {
	sched, err := lib.GetScheduler()
	if err != nil {
		return err
	}
	return sched.Shutdown()
}
