// seed carga un catálogo de ejemplo (categorías, bodegas y productos) en PostgreSQL
// e imprime un token JWT de desarrollo.
//
// Uso: go run ./cmd/seed [rol]
// El rol por defecto es admin. Los registros que ya existen se omiten.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/jhoicas/stock-movements-api/internal/application/dto"
	"github.com/jhoicas/stock-movements-api/internal/application/usecase"
	"github.com/jhoicas/stock-movements-api/internal/domain"
	"github.com/jhoicas/stock-movements-api/internal/infrastructure/postgres"
	"github.com/jhoicas/stock-movements-api/pkg/config"
	"github.com/jhoicas/stock-movements-api/pkg/jwt"
)

type seedProduct struct {
	sku, name, unit, category string
	threshold                 int
}

var (
	seedCategories = []string{"Ferretería", "Pinturas", "Eléctricos"}
	seedWarehouses = []dto.CreateWarehouseRequest{
		{Name: "Bodega Central", Location: "Zona industrial, nave 3"},
		{Name: "Bodega Norte", Location: "Calle 80 # 12-40"},
	}
	seedProducts = []seedProduct{
		{"TOR-0001", "Tornillo drywall 6x1\"", "pcs", "Ferretería", 500},
		{"TAR-0001", "Taco plástico 1/4\"", "pcs", "Ferretería", 300},
		{"PIN-0001", "Pintura vinilo blanco 1 gal", "gal", "Pinturas", 20},
		{"CAB-0001", "Cable THHN 12 AWG", "m", "Eléctricos", 150},
	}
)

func main() {
	role := jwt.RoleAdmin
	if len(os.Args) > 1 {
		role = os.Args[1]
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Cargar configuración: %v\n", err)
		os.Exit(1)
	}
	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Conexión a PostgreSQL: %v\n", err)
		os.Exit(1)
	}
	defer pool.Close()
	if err := postgres.Migrate(ctx, pool); err != nil {
		fmt.Fprintf(os.Stderr, "Aplicar esquema: %v\n", err)
		os.Exit(1)
	}

	categoryRepo := postgres.NewCategoryRepository(pool)
	categories := usecase.NewCategoryUseCase(categoryRepo)
	warehouses := usecase.NewWarehouseUseCase(postgres.NewWarehouseRepository(pool))
	products := usecase.NewProductUseCase(postgres.NewProductRepository(pool), categoryRepo)

	categoryIDs := make(map[string]string)
	existing, err := categories.List(ctx, 0, 0)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Listar categorías: %v\n", err)
		os.Exit(1)
	}
	for _, c := range existing.Items {
		categoryIDs[c.Name] = c.ID
	}
	for _, name := range seedCategories {
		if _, ok := categoryIDs[name]; ok {
			continue
		}
		c, err := categories.Create(ctx, dto.CategoryRequest{Name: name})
		if err != nil {
			fmt.Fprintf(os.Stderr, "Crear categoría %s: %v\n", name, err)
			os.Exit(1)
		}
		categoryIDs[name] = c.ID
		fmt.Printf("categoría  %s  %s\n", c.ID, name)
	}

	whs, err := warehouses.List(ctx, 0, 0)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Listar bodegas: %v\n", err)
		os.Exit(1)
	}
	if len(whs.Items) == 0 {
		for _, in := range seedWarehouses {
			w, err := warehouses.Create(ctx, in)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Crear bodega %s: %v\n", in.Name, err)
				os.Exit(1)
			}
			fmt.Printf("bodega     %s  %s\n", w.ID, w.Name)
		}
	}

	for _, p := range seedProducts {
		out, err := products.Create(ctx, dto.CreateProductRequest{
			SKU:               p.sku,
			Name:              p.name,
			Unit:              p.unit,
			CategoryID:        categoryIDs[p.category],
			LowStockThreshold: p.threshold,
		})
		if errors.Is(err, domain.ErrDuplicate) {
			continue
		}
		if err != nil {
			fmt.Fprintf(os.Stderr, "Crear producto %s: %v\n", p.sku, err)
			os.Exit(1)
		}
		fmt.Printf("producto   %s  %s\n", out.ID, out.SKU)
	}

	token, err := jwt.Generate(cfg.JWT.Secret, "seed-"+role, role, cfg.JWT.Issuer, cfg.JWT.Expiration)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Generar token: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("\nAuthorization: Bearer %s\n", token)
}
