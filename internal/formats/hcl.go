package formats

import (
	"errors"
	"fmt"
	"math/big"
	"sort"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/zclconf/go-cty/cty"

	"datashell/pkg/shelltypes"
)

// ParseHCL parses an attribute-only HCL body (tfvars style). Attributes keep
// their source order; expressions are evaluated without variables or functions.
func ParseHCL(content string) (shelltypes.Value, error) {
	file, diags := hclsyntax.ParseConfig([]byte(content), "content.hcl", hcl.InitialPos)
	if diags.HasErrors() {
		return shelltypes.Value{}, errors.New(diags.Error())
	}

	attrs, diags := file.Body.JustAttributes()
	if diags.HasErrors() {
		return shelltypes.Value{}, errors.New(diags.Error())
	}

	ordered := make([]*hcl.Attribute, 0, len(attrs))
	for _, attr := range attrs {
		ordered = append(ordered, attr)
	}
	sort.Slice(ordered, func(i, j int) bool {
		return ordered[i].Range.Start.Byte < ordered[j].Range.Start.Byte
	})

	row := shelltypes.NewRow()
	for _, attr := range ordered {
		val, diags := attr.Expr.Value(nil)
		if diags.HasErrors() {
			return shelltypes.Value{}, errors.New(diags.Error())
		}
		value, err := fromCty(val)
		if err != nil {
			return shelltypes.Value{}, fmt.Errorf("attribute %q: %w", attr.Name, err)
		}
		row.Set(attr.Name, value)
	}
	return shelltypes.NewRowValue(row), nil
}

func fromCty(v cty.Value) (shelltypes.Value, error) {
	if v.IsNull() {
		return shelltypes.NewNothing(), nil
	}
	if !v.IsKnown() {
		return shelltypes.Value{}, errors.New("value is not known")
	}

	ty := v.Type()
	switch {
	case ty.Equals(cty.String):
		return shelltypes.NewString(v.AsString()), nil
	case ty.Equals(cty.Bool):
		return shelltypes.NewBoolean(v.True()), nil
	case ty.Equals(cty.Number):
		bf := v.AsBigFloat()
		if bf.IsInt() {
			if i, acc := bf.Int64(); acc == big.Exact {
				return shelltypes.NewInt(i), nil
			}
		}
		f, _ := bf.Float64()
		return shelltypes.NewDecimal(f), nil
	case ty.IsListType() || ty.IsSetType() || ty.IsTupleType():
		items := make([]shelltypes.Value, 0, v.LengthInt())
		for it := v.ElementIterator(); it.Next(); {
			_, elem := it.Element()
			item, err := fromCty(elem)
			if err != nil {
				return shelltypes.Value{}, err
			}
			items = append(items, item)
		}
		return shelltypes.NewList(items...), nil
	case ty.IsMapType() || ty.IsObjectType():
		row := shelltypes.NewRow()
		for it := v.ElementIterator(); it.Next(); {
			key, elem := it.Element()
			item, err := fromCty(elem)
			if err != nil {
				return shelltypes.Value{}, err
			}
			row.Set(key.AsString(), item)
		}
		return shelltypes.NewRowValue(row), nil
	}
	return shelltypes.Value{}, fmt.Errorf("unsupported type %s", ty.FriendlyName())
}
