package service

import (
	"encoding/json"
	"fmt"
	"reflect"
	"sort"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"github.com/zenilop-regex/ai-tax-agent/config"
	"github.com/zenilop-regex/ai-tax-agent/dto"
	"github.com/zenilop-regex/ai-tax-agent/utils"
)

// currencyKeywords mark leaf names whose string values are parsed as
// rupee amounts before assignment.
var currencyKeywords = []string{"salary", "income", "tds", "tax", "amount", "deduction", "refund"}

// OverrideService applies user-supplied dotted-path field overrides to
// an ITR-1 document.
type OverrideService struct {
	params config.TaxParams
	logger zerolog.Logger
}

func NewOverrideService(params config.TaxParams, logger zerolog.Logger) *OverrideService {
	return &OverrideService{
		params: params,
		logger: logger,
	}
}

// Apply returns a new document with the overrides applied and derived
// totals recomputed. The input document is never mutated. Paths that
// cannot be resolved or values that cannot be coerced are skipped and
// reported, never fatal. An empty batch returns an identical copy.
func (s *OverrideService) Apply(doc *dto.ITRDocument, overrides map[string]any) (*dto.ITRDocument, []string, error) {
	result, err := cloneDocument(doc)
	if err != nil {
		return nil, nil, err
	}
	if len(overrides) == 0 {
		return result, nil, nil
	}

	paths := make([]string, 0, len(overrides))
	for path := range overrides {
		paths = append(paths, path)
	}
	sort.Strings(paths)

	var skipped []string
	for _, path := range paths {
		value := overrides[path]
		// Suggestion objects from the recommender carry the value
		// under suggested_value.
		if m, ok := value.(map[string]any); ok {
			if suggested, ok := m["suggested_value"]; ok {
				value = suggested
			}
		}

		if err := s.setPath(result, path, value); err != nil {
			s.logger.Warn().Str("path", path).Err(err).Msg("failed to apply override")
			skipped = append(skipped, path)
		}
	}

	RecomputeTotals(result, s.params)
	return result, skipped, nil
}

func cloneDocument(doc *dto.ITRDocument) (*dto.ITRDocument, error) {
	data, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("failed to copy document: %w", err)
	}
	var clone dto.ITRDocument
	if err := json.Unmarshal(data, &clone); err != nil {
		return nil, fmt.Errorf("failed to copy document: %w", err)
	}
	return &clone, nil
}

// pathSegment is one parsed element of a dotted path; index is -1 when
// no subscript was present.
type pathSegment struct {
	name  string
	index int
}

func parsePath(path string) ([]pathSegment, error) {
	path = strings.TrimSpace(path)
	path = strings.TrimPrefix(path, "ITR.ITR1.")
	path = strings.TrimPrefix(path, "ITR1.")
	if path == "" {
		return nil, fmt.Errorf("empty path")
	}

	var segments []pathSegment
	for _, part := range strings.Split(path, ".") {
		seg := pathSegment{name: part, index: -1}
		if open := strings.Index(part, "["); open >= 0 {
			closing := strings.Index(part, "]")
			if closing < open {
				return nil, fmt.Errorf("malformed subscript in %q", part)
			}
			idx, err := strconv.Atoi(part[open+1 : closing])
			if err != nil || idx < 0 {
				return nil, fmt.Errorf("invalid index in %q", part)
			}
			seg.name = part[:open]
			seg.index = idx
		}
		if seg.name == "" {
			return nil, fmt.Errorf("empty segment in path")
		}
		segments = append(segments, seg)
	}
	return segments, nil
}

// setPath navigates the typed document by JSON tag names and assigns
// the coerced value at the leaf.
func (s *OverrideService) setPath(doc *dto.ITRDocument, path string, value any) error {
	segments, err := parsePath(path)
	if err != nil {
		return err
	}

	current := reflect.ValueOf(&doc.ITR.ITR1).Elem()
	for i, seg := range segments {
		field, err := fieldByJSONTag(current, seg.name)
		if err != nil {
			return err
		}

		if seg.index >= 0 {
			if field.Kind() != reflect.Slice {
				return fmt.Errorf("%s is not an array", seg.name)
			}
			for field.Len() <= seg.index {
				field.Set(reflect.Append(field, reflect.Zero(field.Type().Elem())))
			}
			field = field.Index(seg.index)
		}

		if i == len(segments)-1 {
			return assignLeaf(field, seg.name, value)
		}
		if field.Kind() != reflect.Struct {
			return fmt.Errorf("%s is not an object", seg.name)
		}
		current = field
	}
	return nil
}

// fieldByJSONTag finds the struct field whose json tag name matches
// the segment.
func fieldByJSONTag(v reflect.Value, name string) (reflect.Value, error) {
	if v.Kind() != reflect.Struct {
		return reflect.Value{}, fmt.Errorf("cannot descend into non-object at %q", name)
	}
	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		tag := t.Field(i).Tag.Get("json")
		tagName := strings.Split(tag, ",")[0]
		if tagName == name {
			return v.Field(i), nil
		}
	}
	return reflect.Value{}, fmt.Errorf("unknown field %q", name)
}

func isCurrencyLeaf(name string) bool {
	lower := strings.ToLower(name)
	for _, kw := range currencyKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

// assignLeaf coerces value into the leaf's static type.
func assignLeaf(field reflect.Value, name string, value any) error {
	if !field.CanSet() {
		return fmt.Errorf("field %q is not settable", name)
	}

	switch field.Kind() {
	case reflect.String:
		switch v := value.(type) {
		case string:
			field.SetString(v)
		case float64:
			field.SetString(strconv.FormatFloat(v, 'f', -1, 64))
		case bool:
			field.SetString(strconv.FormatBool(v))
		default:
			return fmt.Errorf("cannot assign %T to string field %q", value, name)
		}
	case reflect.Int, reflect.Int64:
		switch v := value.(type) {
		case float64:
			field.SetInt(int64(v))
		case int:
			field.SetInt(int64(v))
		case string:
			v = strings.TrimSpace(v)
			if v == "" {
				return fmt.Errorf("empty value for numeric field %q", name)
			}
			if n, err := strconv.Atoi(v); err == nil {
				field.SetInt(int64(n))
				break
			}
			if isCurrencyLeaf(name) {
				if n := utils.NormalizeAmount(v); n != 0 {
					field.SetInt(int64(n))
					break
				}
			}
			return fmt.Errorf("cannot parse %q as number for field %q", v, name)
		default:
			return fmt.Errorf("cannot assign %T to numeric field %q", value, name)
		}
	case reflect.Struct, reflect.Slice:
		return fmt.Errorf("field %q is not a leaf", name)
	default:
		return fmt.Errorf("unsupported field kind %s for %q", field.Kind(), name)
	}
	return nil
}
