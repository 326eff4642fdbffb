package apitest

import (
	"kassa/internal/hal"

	"github.com/stretchr/testify/assert"
)

// ProductProperties are the keys of a product representation.
var ProductProperties = []string{"name", "barcode", "cost", "vat"}

func AssertHALContentType(t assert.TestingT, r *Response) bool {
	return assert.Equal(t, hal.MIMEHalJSON, r.ContentType(), "unexpected content type")
}

func AssertProblemContentType(t assert.TestingT, r *Response) bool {
	return assert.Equal(t, hal.MIMEProblemJSON, r.ContentType(), "unexpected content type")
}

// AssertAllPropertiesExist checks that every key is present, null values
// included.
func AssertAllPropertiesExist(t assert.TestingT, content map[string]interface{}, properties ...string) bool {
	ok := true
	for _, property := range properties {
		if _, found := content[property]; !found {
			ok = assert.Fail(t, "missing property", "property %q not found in %v", property, content) && ok
		}
	}
	return ok
}

func AssertAllProductPropertiesExist(t assert.TestingT, content map[string]interface{}) bool {
	return AssertAllPropertiesExist(t, content, ProductProperties...)
}

// AssertContentHasLinks checks for a non-empty "_links" member.
func AssertContentHasLinks(t assert.TestingT, content map[string]interface{}) bool {
	links, ok := content["_links"].(map[string]interface{})
	if !ok {
		return assert.Fail(t, "missing _links", "content has no _links object: %v", content)
	}
	return assert.NotEmpty(t, links, "_links is empty")
}
