package jobs

import (
	"log"
	"sync"

	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"github.com/justoneteeteam/od-admin-operations-executive-suite-sub000/config"
	"github.com/justoneteeteam/od-admin-operations-executive-suite-sub000/cron"
	inventoryRepo "github.com/justoneteeteam/od-admin-operations-executive-suite-sub000/model/repository/inventory"
	inventoryService "github.com/justoneteeteam/od-admin-operations-executive-suite-sub000/service/inventory"
)

func init() {
	cron.Register("inventory:reconcile", "0 3 * * *", ReconcileJob)
}

var (
	dbMu sync.Mutex
	db   *gorm.DB
)

// SetDB injects the connection the jobs run against. When unset, the job
// opens its own from env.
func SetDB(d *gorm.DB) {
	dbMu.Lock()
	defer dbMu.Unlock()
	db = d
}

func jobDB() (*gorm.DB, error) {
	dbMu.Lock()
	defer dbMu.Unlock()
	if db != nil {
		return db, nil
	}
	d, err := config.NewDB()
	if err != nil {
		return nil, err
	}
	db = d
	return db, nil
}

// ReconcileJob replays the ledger for every (product, warehouse) pair and
// repairs projections that drifted, then refreshes the denormalized product
// stock figures. Divergence here means a defect elsewhere; it is logged loudly.
func ReconcileJob(args ...string) {
	d, err := jobDB()
	if err != nil {
		log.Printf("reconcile: open db: %v", err)
		return
	}
	if err := Reconcile(d); err != nil {
		log.Printf("reconcile: %v", err)
	}
}

// Reconcile runs one reconciliation pass. Split out for the CLI command and tests.
func Reconcile(d *gorm.DB) error {
	ledger := inventoryRepo.NewLedgerRepository(d)
	pairs, err := ledger.Pairs()
	if err != nil {
		return err
	}

	repaired := 0
	var repairedMu sync.Mutex
	var g errgroup.Group
	g.SetLimit(4)

	for _, pair := range pairs {
		pair := pair
		g.Go(func() error {
			stocks := inventoryRepo.NewStockRepository(d)
			before, err := stocks.GetPair(pair.ProductID, pair.WarehouseID)
			if err != nil {
				return err
			}
			proj := inventoryService.NewProjector(d)
			after, err := proj.Recompute(pair.ProductID, pair.WarehouseID)
			if err != nil {
				return err
			}
			if before == nil ||
				before.CurrentQuantity != after.CurrentQuantity ||
				before.ReservedQuantity != after.ReservedQuantity {
				log.Printf("reconcile: repaired product=%d warehouse=%d current=%d reserved=%d",
					pair.ProductID, pair.WarehouseID, after.CurrentQuantity, after.ReservedQuantity)
				repairedMu.Lock()
				repaired++
				repairedMu.Unlock()
			}
			return proj.RefreshProductStock(pair.ProductID)
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	log.Printf("reconcile: %d pairs checked, %d repaired", len(pairs), repaired)
	return nil
}
