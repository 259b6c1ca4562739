package image

import (
	"fmt"
	"sort"
	"strings"

	"photo-editor/internal/pkg/common"
)

// Adjustment 調整項目名稱
type Adjustment string

// 支援的調整項目
const (
	Exposure   Adjustment = "exposure"
	Highlights Adjustment = "highlights"
	Shadows    Adjustment = "shadows"
	Whites     Adjustment = "whites"
	Blacks     Adjustment = "blacks"
	Brightness Adjustment = "brightness"
	Contrast   Adjustment = "contrast"
	Saturation Adjustment = "saturation"
)

// Order 管線套用順序，與 map 的迭代順序無關
var Order = []Adjustment{
	Exposure,
	Highlights,
	Shadows,
	Whites,
	Blacks,
	Brightness,
	Contrast,
	Saturation,
}

// Adjustments 調整項目與強度，不存在的項目代表不調整
type Adjustments map[Adjustment]float64

// Get 取得強度，第二個回傳值表示項目是否存在
func (a Adjustments) Get(name Adjustment) (float64, bool) {
	s, ok := a[name]
	return s, ok
}

// String 依管線順序輸出，方便記錄日誌
func (a Adjustments) String() string {
	parts := make([]string, 0, len(a))
	for _, name := range Order {
		if s, ok := a[name]; ok {
			parts = append(parts, fmt.Sprintf("%s=%g", name, s))
		}
	}
	return strings.Join(parts, ",")
}

// IsIdentity 所有存在的項目強度都是 1.0
func (a Adjustments) IsIdentity() bool {
	for _, s := range a {
		if s != 1.0 {
			return false
		}
	}
	return true
}

func isKnown(name Adjustment) bool {
	for _, n := range Order {
		if n == name {
			return true
		}
	}
	return false
}

// Validate 檢查名稱是否支援，強度是否為非負數
func (a Adjustments) Validate() error {
	for name, s := range a {
		if !isKnown(name) {
			return common.ErrInvalidAdjustment.WithMessage(
				fmt.Sprintf("Unknown adjustment %q", name))
		}
		if s < 0 {
			return common.ErrInvalidAdjustment.WithMessage(
				fmt.Sprintf("Adjustment %q must be non-negative, got %g", name, s))
		}
	}
	return nil
}

// ParseAdjustments 解析 JSON 解碼出的調整項目
func ParseAdjustments(raw map[string]interface{}) (Adjustments, error) {
	adj := make(Adjustments, len(raw))

	// 固定順序解析，錯誤訊息才會穩定
	keys := make([]string, 0, len(raw))
	for k := range raw {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		s, err := common.NumberToFloat(raw[k])
		if err != nil {
			return nil, common.ErrInvalidAdjustment.WithMessage(
				fmt.Sprintf("Invalid value for %q: %v", k, err))
		}
		adj[Adjustment(k)] = s
	}

	if err := adj.Validate(); err != nil {
		return nil, err
	}
	return adj, nil
}
