package main

import (
	"fmt"
	"math/rand/v2"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/wsvendas/motostock/internal/adapters/db"
	"github.com/wsvendas/motostock/internal/core/domain"
	"github.com/wsvendas/motostock/internal/core/services"
)

var (
	seedCount int
	seedSold  int
	seedImage string
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Insert demo motorcycles",
	Long: `seed appends --count generated motorcycles to the admin list and
marks the first --sold of them as sold. Existing rows are left alone.`,
	RunE: runSeed,
}

func init() {
	seedCmd.Flags().IntVar(&seedCount, "count", 12, "number of motorcycles to insert")
	seedCmd.Flags().IntVar(&seedSold, "sold", 3, "how many of the inserted motorcycles to mark sold")
	seedCmd.Flags().StringVar(&seedImage, "image", "https://placehold.co/800x600.jpg", "photo URL used for every row")
}

type seedModel struct {
	brand        string
	model        string
	displacement int
	fuel         domain.Fuel
	start        domain.StartType
	basePrice    int64
}

var seedModels = []seedModel{
	{"Honda", "CG 160 Fan", 160, domain.FuelFlex, domain.StartElectric, 14000},
	{"Honda", "Biz 125", 125, domain.FuelFlex, domain.StartElectric, 12500},
	{"Honda", "CB 300F Twister", 293, domain.FuelFlex, domain.StartElectric, 21000},
	{"Yamaha", "Factor 150", 149, domain.FuelFlex, domain.StartElectric, 13500},
	{"Yamaha", "Fazer 250", 249, domain.FuelFlex, domain.StartElectric, 19000},
	{"Shineray", "Jet 50", 50, domain.FuelGasoline, domain.StartElectricKick, 6500},
	{"Suzuki", "Yes 125", 125, domain.FuelGasoline, domain.StartElectricKick, 7800},
	{"Haojue", "DK 150", 150, domain.FuelFlex, domain.StartElectric, 11000},
}

var seedColors = []string{"Vermelha", "Preta", "Branca", "Azul", "Prata", "Cinza"}

func runSeed(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	if seedSold > seedCount {
		return fmt.Errorf("--sold (%d) cannot exceed --count (%d)", seedSold, seedCount)
	}

	database, err := openDatabase(ctx)
	if err != nil {
		return err
	}
	defer database.Close()

	repo := db.NewMotorcycleRepository(database, log)
	feed := services.NewNotificationFeed(seedCount*2+1, log)
	admin := services.NewAdminSession(repo, feed, nil, log)
	if err := admin.Load(ctx); err != nil {
		return fmt.Errorf("failed to load motorcycles: %w", err)
	}
	before := len(admin.Items())

	for i := 0; i < seedCount; i++ {
		if err := admin.Upsert(ctx, seedForm(i), nil); err != nil {
			return fmt.Errorf("failed to insert motorcycle %d: %w", i+1, err)
		}
	}

	items := admin.Items()
	for i := 0; i < seedSold; i++ {
		if err := admin.ToggleSold(ctx, items[before+i].ID); err != nil {
			return fmt.Errorf("failed to mark motorcycle sold: %w", err)
		}
	}

	fmt.Fprintf(cmd.OutOrStdout(), "inserted %d motorcycles (%d sold)\n", seedCount, seedSold)
	return nil
}

func seedForm(i int) domain.MotorcycleForm {
	m := seedModels[i%len(seedModels)]
	year := 2015 + rand.IntN(10)
	km := rand.IntN(60) * 1000

	return domain.MotorcycleForm{
		Brand:        m.brand,
		Model:        m.model,
		Year:         fmt.Sprintf("%d/%d", year, year+1),
		Color:        seedColors[rand.IntN(len(seedColors))],
		Transmission: domain.TransmissionManual,
		Fuel:         m.fuel,
		StartType:    m.start,
		PlateEnd:     fmt.Sprint(rand.IntN(10)),
		Km:           km,
		Price:        decimal.NewFromInt(m.basePrice + int64(year-2015)*400 - int64(km/10000)*150),
		Displacement: m.displacement,
		Images:       []string{seedImage},
	}
}
