package models

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"time"
)

// pick takes d[key] out of d and assigns it to dest via conv.
//
// When d does not have key, dest is left untouched.
func pick[T any](d Dict, key string, dest *T, conv func(any) (T, error)) error {
	v, ok := d[key]
	if !ok {
		return nil
	}
	delete(d, key)

	t, err := conv(v)
	if err != nil {
		return InvalidAttribute{Attr: key, Reason: err.Error()}
	}
	*dest = t
	return nil
}

func asString(v any) (string, error) {
	switch s := v.(type) {
	case nil:
		return "", nil
	case string:
		return s, nil
	case json.Number:
		return s.String(), nil
	}
	return "", fmt.Errorf("not a string: %v (%T)", v, v)
}

func asInt(v any) (int, error) {
	switch n := v.(type) {
	case nil:
		return 0, nil
	case int:
		return n, nil
	case int32:
		return int(n), nil
	case int64:
		return int(n), nil
	case float64:
		if n != math.Trunc(n) {
			return 0, fmt.Errorf("not an integer: %v", n)
		}
		return int(n), nil
	case json.Number:
		i, err := n.Int64()
		if err != nil {
			return 0, fmt.Errorf("not an integer: %s", n)
		}
		return int(i), nil
	case string:
		i, err := strconv.Atoi(n)
		if err != nil {
			return 0, fmt.Errorf("not an integer: %q", n)
		}
		return i, nil
	}
	return 0, fmt.Errorf("not an integer: %v (%T)", v, v)
}

func asFloat(v any) (float64, error) {
	switch n := v.(type) {
	case nil:
		return 0, nil
	case float64:
		return n, nil
	case float32:
		return float64(n), nil
	case int:
		return float64(n), nil
	case int64:
		return float64(n), nil
	case json.Number:
		f, err := n.Float64()
		if err != nil {
			return 0, fmt.Errorf("not a number: %s", n)
		}
		return f, nil
	case string:
		f, err := strconv.ParseFloat(n, 64)
		if err != nil {
			return 0, fmt.Errorf("not a number: %q", n)
		}
		return f, nil
	}
	return 0, fmt.Errorf("not a number: %v (%T)", v, v)
}

func asStrings(v any) ([]string, error) {
	switch l := v.(type) {
	case nil:
		return []string{}, nil
	case []string:
		return append([]string{}, l...), nil
	case []any:
		ret := make([]string, 0, len(l))
		for _, item := range l {
			s, ok := item.(string)
			if !ok {
				return nil, fmt.Errorf("not a string: %v (%T)", item, item)
			}
			ret = append(ret, s)
		}
		return ret, nil
	}
	return nil, fmt.Errorf("not a list of strings: %v (%T)", v, v)
}

func asTime(v any) (time.Time, error) {
	switch t := v.(type) {
	case time.Time:
		return t.UTC(), nil
	case string:
		// fraction of second is accepted even when the layout does not have it.
		parsed, err := time.Parse("2006-01-02T15:04:05", t)
		if err != nil {
			return time.Time{}, err
		}
		return parsed, nil
	}
	return time.Time{}, fmt.Errorf("not a timestamp: %v (%T)", v, v)
}
