package cmd

import (
	"time"

	"AdminBackend/config"
	"AdminBackend/logger"
	"AdminBackend/seed"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const (
	productsFlag      = "products"
	brandsFlag        = "brands"
	suppliersFlag     = "suppliers"
	ownerFlag         = "owner-id"
	adminEmailFlag    = "admin-email"
	adminPasswordFlag = "admin-password"
	randomSeedFlag    = "random-seed"
)

func newSeedCommand() *cobra.Command {
	seedCmd := &cobra.Command{
		Use:   "seed",
		Short: "Fill the database with demo data",
		Long: `Insert the fixture categories and fake brands, suppliers and products.

Every product gets 2 to 5 image urls. When --admin-email is given the admin is
created if missing and owns all seeded rows.`,
		RunE: seedCommand,
	}

	defaults := seed.DefaultOptions()
	seedCmd.Flags().Int(productsFlag, defaults.Products, "Number of products")
	seedCmd.Flags().Int(brandsFlag, defaults.Brands, "Number of brands")
	seedCmd.Flags().Int(suppliersFlag, defaults.Suppliers, "Number of suppliers")
	seedCmd.Flags().Uint(ownerFlag, defaults.OwnerID, "User id owning the seeded rows")
	seedCmd.Flags().String(adminEmailFlag, "", "Admin account to create or reuse")
	seedCmd.Flags().String(adminPasswordFlag, "", "Password for a newly created admin")
	seedCmd.Flags().Int64(randomSeedFlag, 0, "Seed for reproducible fake data (0 uses the clock)")
	return seedCmd
}

func seedCommand(cmd *cobra.Command, _ []string) error {
	cfg, err := bootstrap(cmd)
	if err != nil {
		return err
	}
	defer logger.Sync()

	opts := seed.DefaultOptions()
	flags := cmd.Flags()
	opts.Products, _ = flags.GetInt(productsFlag)
	opts.Brands, _ = flags.GetInt(brandsFlag)
	opts.Suppliers, _ = flags.GetInt(suppliersFlag)
	opts.OwnerID, _ = flags.GetUint(ownerFlag)
	opts.AdminEmail, _ = flags.GetString(adminEmailFlag)
	opts.AdminPassword, _ = flags.GetString(adminPasswordFlag)
	randomSeed, _ := flags.GetInt64(randomSeedFlag)
	if randomSeed == 0 {
		randomSeed = time.Now().UnixNano()
	}

	db, err := config.SetupDatabaseConnection(cfg)
	if err != nil {
		return err
	}
	defer config.CloseDatabase(db)

	summary, err := seed.New(db, randomSeed).Run(cmd.Context(), opts)
	if err != nil {
		return err
	}

	logger.Log.Info("seeding completed",
		zap.Int("categories", summary.Categories),
		zap.Int("brands", summary.Brands),
		zap.Int("suppliers", summary.Suppliers),
		zap.Int("products", summary.Products),
		zap.Int("images", summary.Images),
	)
	return nil
}
