// Package customer validates parsed request bodies for the customer API.
//
// Handlers decode JSON bodies into loosely-typed maps, so every check here
// is both a presence and a type check: a missing field and a wrong-typed
// field produce the same defect. Defects are human-readable tokens naming
// the offending field, accumulated in checking order, and returned to the
// caller verbatim in the 400 response's missingFields list.
package customer

import "fmt"

// ValidateCustomer checks the customer fields of a parsed request body and
// returns one defect per missing or wrong-typed field. Numbers decoded by
// encoding/json arrive as float64; age must be a positive number.
func ValidateCustomer(body map[string]any) []string {
	var defects []string

	if name, ok := body["name"].(string); !ok || name == "" {
		defects = append(defects, "name")
	}
	if age, ok := body["age"].(float64); !ok || age <= 0 {
		defects = append(defects, "age (must be a number)")
	}
	if mobile, ok := body["mobileNumber"].(string); !ok || mobile == "" {
		defects = append(defects, "mobileNumber")
	}

	return defects
}

// ValidateAddresses checks the address list of a create request.
//
// An empty (or absent; callers pass nil) list yields a single defect and no
// element inspection. Otherwise every element is checked in order and
// defects accumulate across elements; a bad element never stops validation
// of the ones after it. An addressType repeated within the list is reported
// against the later index and is not added to the seen set again, so three
// occurrences produce two duplicate defects against the same first value.
func ValidateAddresses(list []any) []string {
	if len(list) == 0 {
		return []string{"addresses (must be a non-empty array)"}
	}

	var defects []string
	seen := make(map[string]bool)

	for i, entry := range list {
		fields, ok := entry.(map[string]any)
		if !ok {
			defects = append(defects, fmt.Sprintf("addresses[%d] (must be an object)", i))
			continue
		}

		if addrType, ok := fields["addressType"].(string); !ok || addrType == "" {
			defects = append(defects, fmt.Sprintf("addresses[%d].addressType", i))
		} else if seen[addrType] {
			defects = append(defects, fmt.Sprintf("addresses[%d].addressType (duplicate type %q)", i, addrType))
		} else {
			seen[addrType] = true
		}

		for _, field := range []string{"address", "city", "town", "zipcode"} {
			if v, ok := fields[field].(string); !ok || v == "" {
				defects = append(defects, fmt.Sprintf("addresses[%d].%s", i, field))
			}
		}
	}

	return defects
}
