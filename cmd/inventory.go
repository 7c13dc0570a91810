package cmd

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"

	"github.com/justoneteeteam/od-admin-operations-executive-suite-sub000/config"
	"github.com/justoneteeteam/od-admin-operations-executive-suite-sub000/cron/jobs"
	inventoryService "github.com/justoneteeteam/od-admin-operations-executive-suite-sub000/service/inventory"
)

var reconcileCmd = &cobra.Command{
	Use:   "inventory:reconcile",
	Short: "Replay the ledger and repair drifted stock projections",
	Run: func(cmd *cobra.Command, args []string) {
		db, err := config.NewDB()
		if err != nil {
			log.Fatalf("db: %v", err)
		}
		jobs.SetDB(db)
		if err := jobs.Reconcile(db); err != nil {
			log.Fatalf("reconcile: %v", err)
		}
		fmt.Println("Reconciliation complete.")
	},
}

var recomputeProductID, recomputeWarehouseID uint

var recomputeCmd = &cobra.Command{
	Use:   "inventory:recompute",
	Short: "Rebuild one (product, warehouse) stock level from the ledger",
	Run: func(cmd *cobra.Command, args []string) {
		if recomputeProductID == 0 || recomputeWarehouseID == 0 {
			log.Fatal("both --product and --warehouse are required")
		}
		db, err := config.NewDB()
		if err != nil {
			log.Fatalf("db: %v", err)
		}
		proj := inventoryService.NewProjector(db)
		level, err := proj.Recompute(recomputeProductID, recomputeWarehouseID)
		if err != nil {
			log.Fatalf("recompute: %v", err)
		}
		if err := proj.RefreshProductStock(recomputeProductID); err != nil {
			log.Fatalf("refresh product stock: %v", err)
		}
		fmt.Printf("product=%d warehouse=%d current=%d reserved=%d\n",
			level.ProductID, level.WarehouseID, level.CurrentQuantity, level.ReservedQuantity)
	},
}

func init() {
	recomputeCmd.Flags().UintVar(&recomputeProductID, "product", 0, "Product id")
	recomputeCmd.Flags().UintVar(&recomputeWarehouseID, "warehouse", 0, "Warehouse id")
	rootCmd.AddCommand(reconcileCmd)
	rootCmd.AddCommand(recomputeCmd)
}
