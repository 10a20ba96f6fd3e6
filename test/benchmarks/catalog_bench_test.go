package benchmarks

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/wsvendas/motostock/internal/adapters/db"
	"github.com/wsvendas/motostock/internal/core/domain"
	"github.com/wsvendas/motostock/internal/core/services"
	"github.com/wsvendas/motostock/internal/pkg/imaging"
	"github.com/wsvendas/motostock/internal/pkg/spreadsheet"
	"github.com/wsvendas/motostock/test/helpers"
)

func BenchmarkAdminSession(b *testing.B) {
	testDB := helpers.SetupTestDB(&testing.T{})
	defer testDB.Database.Close()

	logger := helpers.TestLogger()
	repo := db.NewMotorcycleRepository(testDB.Database, logger)
	feed := services.NewNotificationFeed(50, logger)
	session := services.NewAdminSession(repo, feed, nil, logger)
	ctx := context.Background()

	b.Run("Upsert", func(b *testing.B) {
		b.ResetTimer()
		for i := 0; i < b.N; i++ {
			form := helpers.CreateTestForm(func(f *domain.MotorcycleForm) {
				f.Model = fmt.Sprintf("CG 160 Bench %d", i)
			})
			_ = session.Upsert(ctx, form, nil)
		}
	})

	// Make sure reorder has something to move
	for i := 0; i < 50; i++ {
		_ = session.Upsert(ctx, helpers.CreateTestForm(), nil)
	}

	b.Run("Reorder", func(b *testing.B) {
		n := len(session.Items())
		b.ResetTimer()
		for i := 0; i < b.N; i++ {
			_ = session.Reorder(ctx, i%n, (i*7)%n)
		}
	})

	b.Run("Load", func(b *testing.B) {
		b.ResetTimer()
		for i := 0; i < b.N; i++ {
			_ = session.Load(ctx)
		}
	})

	b.Run("Search", func(b *testing.B) {
		filter := domain.CatalogFilter{Query: "cg", Brands: []string{"Honda", domain.OtherBrands}}

		b.ResetTimer()
		for i := 0; i < b.N; i++ {
			_, _ = repo.Search(ctx, filter)
		}
	})
}

func BenchmarkBuildCatalogQuery(b *testing.B) {
	minPrice := decimal.NewFromInt(8000)
	maxKm := 30000
	filter := domain.CatalogFilter{
		Page:     3,
		MinPrice: &minPrice,
		MaxKm:    &maxKm,
		Brands:   []string{"Yamaha", domain.OtherBrands},
		Query:    "fazer 250",
	}

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = db.BuildCatalogQuery(filter)
	}
}

func BenchmarkMoveItem(b *testing.B) {
	items := helpers.CreateTestMotorcycles(200)

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		moved, _ := domain.MoveItem(items, i%len(items), 0)
		_ = domain.AssignOrder(moved)
	}
}

func BenchmarkSpreadsheet(b *testing.B) {
	items := helpers.CreateTestMotorcycles(500)

	var buf bytes.Buffer
	if err := spreadsheet.Write(&buf, items); err != nil {
		b.Fatal(err)
	}
	data := buf.Bytes()

	b.Run("Write", func(b *testing.B) {
		b.ReportAllocs()
		for i := 0; i < b.N; i++ {
			var out bytes.Buffer
			_ = spreadsheet.Write(&out, items)
		}
	})

	b.Run("Read", func(b *testing.B) {
		b.ReportAllocs()
		for i := 0; i < b.N; i++ {
			_, _, _ = spreadsheet.Read(data)
		}
	})
}

func BenchmarkCrop(b *testing.B) {
	img := image.NewRGBA(image.Rect(0, 0, 1600, 1200))
	for y := 0; y < 1200; y++ {
		for x := 0; x < 1600; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x), G: uint8(y), B: 90, A: 255})
		}
	}
	var src bytes.Buffer
	if err := png.Encode(&src, img); err != nil {
		b.Fatal(err)
	}
	raw := src.Bytes()
	rect := imaging.CropRect{X: 200, Y: 100, Width: 1200, Aspect: 4.0 / 3.0}

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = imaging.Crop(bytes.NewReader(raw), rect)
	}
}
