package models

import (
	"bytes"
	"strconv"
	"strings"

	"github.com/goccy/go-json"
	"github.com/shopspring/decimal"
)

// FlexString nhận cả chuỗi lẫn số từ JSON của backend
type FlexString string

func (f *FlexString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*f = ""
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = FlexString(s)
		return nil
	}
	if _, err := strconv.ParseFloat(string(data), 64); err == nil {
		*f = FlexString(data)
		return nil
	}
	if bytes.Equal(data, []byte("true")) || bytes.Equal(data, []byte("false")) {
		*f = FlexString(data)
		return nil
	}
	// object hoặc mảng: giữ nguyên dạng JSON
	*f = FlexString(data)
	return nil
}

func (f FlexString) String() string {
	return string(f)
}

// FlexDecimal là số tiền từ backend: nhận số hoặc chuỗi số.
// Rỗng, null hay giá trị không parse được đều coi là 0 để một bản ghi lỗi không làm hỏng cả danh sách.
type FlexDecimal struct {
	decimal.Decimal
}

func NewFlexDecimal(d decimal.Decimal) FlexDecimal {
	return FlexDecimal{Decimal: d}
}

func (f *FlexDecimal) UnmarshalJSON(data []byte) error {
	f.Decimal = decimal.Zero
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil
	}
	raw := string(data)
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return nil
		}
		raw = strings.TrimSpace(s)
	}
	if d, err := decimal.NewFromString(raw); err == nil {
		f.Decimal = d
	}
	return nil
}
