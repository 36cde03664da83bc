package render

import (
	"context"
	"embed"
	"fmt"
	"html/template"
	"os"
	"path/filepath"
	"sort"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/halvard/alchemist/internal/alchemy"
	"github.com/halvard/alchemist/internal/dataset"
	"github.com/halvard/alchemist/internal/domain"
	"github.com/halvard/alchemist/internal/logger"
)

//go:embed templates/*.gohtml
var templateFS embed.FS

var titleCaser = cases.Title(language.English)

var funcs = template.FuncMap{
	// crop renders whole numbers without a decimal point and everything
	// else rounded to one decimal.
	"crop": func(v float64) string {
		if v == float64(int64(v)) {
			return fmt.Sprintf("%d", int64(v))
		}
		return fmt.Sprintf("%.1f", v)
	},
	"titlecase": func(s string) string { return titleCaser.String(s) },
}

var pageTemplates = template.Must(
	template.New("site").Funcs(funcs).ParseFS(templateFS, "templates/*.gohtml"),
)

type page struct {
	Manifest SiteManifest
	Heading  string
}

type indexView struct {
	page
	Ingredients int
	Effects     int
	Traits      int
	Potencies   int
	Potions     int
	PotencySets int
}

type ingredientView struct {
	Name              string
	Value             int
	Plantable         bool
	VendorRarity      string
	UniqueTo          string
	Accessibility     float64
	Effects           []string
	Potions           int
	MeanPotionPrice   float64
	MedianPotionPrice float64
}

type ingredientsView struct {
	page
	Rows []ingredientView
}

type effectView struct {
	Name                string
	Type                string
	BaseCost            float64
	Ingredients         int
	MedianMagnitude     float64
	MedianDuration      float64
	MedianPrice         float64
	MedianAccessibility float64
}

type effectsView struct {
	page
	Rows []effectView
}

type potencyView struct {
	Effect    string
	Magnitude float64
	Duration  int
	Price     float64
}

type potionGroupView struct {
	Price        float64
	Count        int
	Ingredients  []string
	Availability string
	Potencies    []potencyView
}

type potionsView struct {
	page
	Groups  []potionGroupView
	Skipped int
}

// WritePages renders the static site into outputDir. Page order, row order
// and group order are all deterministic, so re-running over unchanged data
// produces byte-identical files.
func WritePages(ctx context.Context, store *dataset.Store, result *alchemy.Result, manifest SiteManifest, outputDir string) error {
	log := logger.FromContext(ctx)
	start := time.Now()

	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return fmt.Errorf("creating output dir: %w", err)
	}

	pages := []struct {
		name  string
		build func() any
	}{
		{"index", func() any { return buildIndexView(store, result, manifest) }},
		{"ingredients", func() any { return buildIngredientsView(store, result, manifest) }},
		{"effects", func() any { return buildEffectsView(store, manifest) }},
		{"potions", func() any { return buildPotionsView(result, manifest) }},
	}

	written := 0
	for _, p := range pages {
		if !manifest.wantsPage(p.name) {
			continue
		}
		if err := writePage(outputDir, p.name, p.build()); err != nil {
			return err
		}
		written++
	}

	log.Info("site rendered", "pages", written, "output", outputDir, "elapsed", time.Since(start))
	return nil
}

func writePage(outputDir, name string, view any) error {
	path := filepath.Join(outputDir, name+".html")
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer f.Close()

	if err := pageTemplates.ExecuteTemplate(f, name+".gohtml", view); err != nil {
		return fmt.Errorf("rendering %s: %w", name, err)
	}
	return nil
}

func newPage(manifest SiteManifest, heading string) page {
	return page{Manifest: manifest, Heading: titleCaser.String(heading)}
}

func buildIndexView(store *dataset.Store, result *alchemy.Result, manifest SiteManifest) indexView {
	return indexView{
		page:        newPage(manifest, ""),
		Ingredients: len(store.Ingredients()),
		Effects:     len(store.Effects()),
		Traits:      len(store.Traits()),
		Potencies:   len(store.Potencies()),
		Potions:     len(result.Potions),
		PotencySets: len(result.ByPotencySet),
	}
}

// buildIngredientsView sorts rows by accessibility ascending (easiest first),
// then name.
func buildIngredientsView(store *dataset.Store, result *alchemy.Result, manifest SiteManifest) ingredientsView {
	view := ingredientsView{page: newPage(manifest, "ingredients")}
	for _, ingredient := range store.Ingredients() {
		var effects []string
		for _, effect := range store.EffectsOf(ingredient) {
			effects = append(effects, effect.Name)
		}
		view.Rows = append(view.Rows, ingredientView{
			Name:              ingredient.Name,
			Value:             ingredient.Value,
			Plantable:         ingredient.Plantable,
			VendorRarity:      string(ingredient.VendorRarity),
			UniqueTo:          string(ingredient.UniqueTo),
			Accessibility:     domain.Round2(store.AccessibilityFactor(ingredient)),
			Effects:           effects,
			Potions:           len(result.ByIngredient[ingredient.Name]),
			MeanPotionPrice:   domain.Round2(result.MeanPriceByIngredient[ingredient.Name]),
			MedianPotionPrice: domain.Round2(result.MedianPriceByIngredient[ingredient.Name]),
		})
	}
	sort.Slice(view.Rows, func(i, j int) bool {
		if view.Rows[i].Accessibility != view.Rows[j].Accessibility {
			return view.Rows[i].Accessibility < view.Rows[j].Accessibility
		}
		return view.Rows[i].Name < view.Rows[j].Name
	})
	return view
}

// buildEffectsView sorts rows by base cost descending, then name.
func buildEffectsView(store *dataset.Store, manifest SiteManifest) effectsView {
	view := effectsView{page: newPage(manifest, "effects")}
	for _, effect := range store.Effects() {
		view.Rows = append(view.Rows, effectView{
			Name:                effect.Name,
			Type:                string(effect.Type),
			BaseCost:            effect.BaseCost,
			Ingredients:         len(store.IngredientsWith(effect)),
			MedianMagnitude:     store.MedianMagnitude(effect),
			MedianDuration:      store.MedianDuration(effect),
			MedianPrice:         domain.Round2(store.MedianPrice(effect)),
			MedianAccessibility: domain.Round2(store.MedianIngredientAccessibility(effect)),
		})
	}
	sort.Slice(view.Rows, func(i, j int) bool {
		if view.Rows[i].BaseCost != view.Rows[j].BaseCost {
			return view.Rows[i].BaseCost > view.Rows[j].BaseCost
		}
		return view.Rows[i].Name < view.Rows[j].Name
	})
	return view
}

// buildPotionsView lists one row per potency set, most valuable first,
// showing the easiest-to-brew potion of each set.
func buildPotionsView(result *alchemy.Result, manifest SiteManifest) potionsView {
	view := potionsView{page: newPage(manifest, "potions")}
	best := result.BestByPotencySet()

	signatures := result.SortedPotencySets()
	if manifest.MaxPotionGroups > 0 && len(signatures) > manifest.MaxPotionGroups {
		view.Skipped = len(signatures) - manifest.MaxPotionGroups
		signatures = signatures[:manifest.MaxPotionGroups]
	}

	for _, signature := range signatures {
		potion := best[signature]
		group := potionGroupView{
			Price:        domain.Round2(potion.Price),
			Count:        len(result.ByPotencySet[signature]),
			Availability: string(potion.Availability()),
		}
		for _, ingredient := range potion.Ingredients {
			group.Ingredients = append(group.Ingredients, ingredient.Name)
		}
		for _, potency := range potion.Potencies {
			group.Potencies = append(group.Potencies, potencyView{
				Effect:    potency.Effect.Name,
				Magnitude: potency.Magnitude,
				Duration:  potency.Duration,
				Price:     domain.Round2(potency.Price),
			})
		}
		view.Groups = append(view.Groups, group)
	}
	return view
}
