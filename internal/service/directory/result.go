package directory

import "github.com/heartmarshall/orgdirectory-backend/internal/domain"

// OrganizationList is the result of every multi-result query operation.
// Total always equals len(Items); the engine performs no server-side
// truncation.
type OrganizationList struct {
	Total int
	Items []*domain.Organization
}

func newOrganizationList(items []*domain.Organization) *OrganizationList {
	return &OrganizationList{
		Total: len(items),
		Items: items,
	}
}
