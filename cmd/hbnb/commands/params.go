package commands

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/opst/hbnb/pkg/models"
)

var ErrInvalidParam = errors.New("invalid parameter")

// ParseValue reads a parameter value.
//
// - `"..."` is a string. "_" in it is a space, and `\"` is a double quote.
// Other double quotes are not allowed.
//
// - a value with "." is a float.
//
// - others are integers.
func ParseValue(v string) (any, error) {
	if strings.HasPrefix(v, `"`) {
		if len(v) < 2 || !strings.HasSuffix(v, `"`) {
			return nil, fmt.Errorf(`%w: unterminated string: %s`, ErrInvalidParam, v)
		}
		body := v[1 : len(v)-1]
		sb := new(strings.Builder)
		for i := 0; i < len(body); i++ {
			switch c := body[i]; c {
			case '\\':
				if i+1 < len(body) && body[i+1] == '"' {
					sb.WriteByte('"')
					i++
				} else {
					sb.WriteByte(c)
				}
			case '"':
				return nil, fmt.Errorf(`%w: unescaped double quote: %s`, ErrInvalidParam, v)
			case '_':
				sb.WriteByte(' ')
			default:
				sb.WriteByte(c)
			}
		}
		return sb.String(), nil
	}

	if strings.Contains(v, ".") {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: not a float: %s", ErrInvalidParam, v)
		}
		return f, nil
	}

	i, err := strconv.Atoi(v)
	if err != nil {
		return nil, fmt.Errorf("%w: not an integer: %s", ErrInvalidParam, v)
	}
	return i, nil
}

// ParseParams reads "key=value" parameters.
//
// Invalid parameters are skipped, and reported as the second return value.
// When a key is given twice, the last one wins.
func ParseParams(params []string) (models.Dict, []error) {
	attrs := models.Dict{}
	var skipped []error
	for _, p := range params {
		key, value, ok := strings.Cut(p, "=")
		if !ok || key == "" {
			skipped = append(skipped, fmt.Errorf("%w: not key=value: %s", ErrInvalidParam, p))
			continue
		}
		v, err := ParseValue(value)
		if err != nil {
			skipped = append(skipped, fmt.Errorf("%s: %w", key, err))
			continue
		}
		attrs[key] = v
	}
	return attrs, skipped
}
