package memory

import (
	"movieportal/pkg/common"
	apperrors "movieportal/pkg/errors"
)

// resumePoint decodes a page token and checks the pinned partition values
func resumePoint(page common.PageRequest, kind string, allowed []string, pinned map[string]string) (map[string]interface{}, error) {
	if !page.HasNextToken() {
		return nil, nil
	}

	key, err := common.DecodeCursor(page.NextToken, kind, allowed...)
	if err != nil {
		return nil, err
	}
	for attr, want := range pinned {
		if got, ok := key[attr].(string); !ok || got != want {
			return nil, apperrors.NewValidationError("nextToken does not belong to this listing")
		}
	}
	return key, nil
}

func str(v interface{}) string {
	s, _ := v.(string)
	return s
}
