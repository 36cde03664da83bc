package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/halvard/alchemist/internal/domain"
)

// ReadCSVDir reads ingredients.csv, effects.csv and traits.csv from dir.
func ReadCSVDir(dir string) (Tables, error) {
	var tables Tables

	if err := readCSVFile(filepath.Join(dir, "ingredients.csv"), func(row record) error {
		parsed, err := parseIngredientRow(row)
		if err != nil {
			return err
		}
		tables.Ingredients = append(tables.Ingredients, parsed)
		return nil
	}); err != nil {
		return Tables{}, err
	}

	if err := readCSVFile(filepath.Join(dir, "effects.csv"), func(row record) error {
		parsed, err := parseEffectRow(row)
		if err != nil {
			return err
		}
		tables.Effects = append(tables.Effects, parsed)
		return nil
	}); err != nil {
		return Tables{}, err
	}

	if err := readCSVFile(filepath.Join(dir, "traits.csv"), func(row record) error {
		parsed, err := parseTraitRow(row)
		if err != nil {
			return err
		}
		tables.Traits = append(tables.Traits, parsed)
		return nil
	}); err != nil {
		return Tables{}, err
	}

	return tables, nil
}

// record is one CSV row keyed by header name, with the source file and line
// attached so coercion failures can point at the exact cell.
type record struct {
	file   string
	line   int
	fields map[string]string
}

func readCSVFile(path string, handle func(record) error) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return fmt.Errorf("reading header of %s: %w", path, err)
	}

	line := 1
	for {
		raw, err := reader.Read()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return fmt.Errorf("reading %s: %w", path, err)
		}
		line++

		fields := make(map[string]string, len(header))
		for i, name := range header {
			if i < len(raw) {
				fields[name] = strings.TrimSpace(raw[i])
			}
		}
		if err := handle(record{file: path, line: line, fields: fields}); err != nil {
			return err
		}
	}
}

func parseIngredientRow(row record) (IngredientRow, error) {
	value, err := row.intField("value")
	if err != nil {
		return IngredientRow{}, err
	}
	plantable, err := row.boolField("plantable")
	if err != nil {
		return IngredientRow{}, err
	}
	return IngredientRow{
		Name:         row.fields["name"],
		Value:        value,
		Plantable:    plantable,
		VendorRarity: row.fields["vendor_rarity"],
		UniqueTo:     row.fields["unique_to"],
	}, nil
}

func parseEffectRow(row record) (EffectRow, error) {
	baseCost, err := row.floatField("base_cost")
	if err != nil {
		return EffectRow{}, err
	}
	return EffectRow{
		Name:     row.fields["name"],
		Type:     row.fields["effect_type"],
		BaseCost: baseCost,
	}, nil
}

func parseTraitRow(row record) (TraitRow, error) {
	magnitude, err := row.floatField("magnitude")
	if err != nil {
		return TraitRow{}, err
	}
	duration, err := row.intField("duration")
	if err != nil {
		return TraitRow{}, err
	}
	order, err := row.intField("order")
	if err != nil {
		return TraitRow{}, err
	}
	return TraitRow{
		IngredientName: row.fields["ingredient_name"],
		EffectName:     row.fields["effect_name"],
		Magnitude:      magnitude,
		Duration:       duration,
		Order:          order,
	}, nil
}

// intField coerces a cell to int. An empty cell means "absent" and yields 0.
func (r record) intField(name string) (int, error) {
	raw := r.fields[name]
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, r.malformed(name, raw)
	}
	return v, nil
}

func (r record) floatField(name string) (float64, error) {
	raw := r.fields[name]
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, r.malformed(name, raw)
	}
	return v, nil
}

// boolField accepts the spellings the reference tables actually use.
func (r record) boolField(name string) (bool, error) {
	switch strings.ToLower(r.fields[name]) {
	case "true", "yes", "1":
		return true, nil
	case "", "false", "no", "0":
		return false, nil
	default:
		return false, r.malformed(name, r.fields[name])
	}
}

func (r record) malformed(field, value string) error {
	return fmt.Errorf("%w: %s line %d: %s=%q", domain.ErrMalformedField, r.file, r.line, field, value)
}
