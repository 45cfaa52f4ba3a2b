package providers

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"wasp/internal/models"
)

// ParseAuditPolicyCSV parses the report produced by
// "auditpol /get /category:* /r": one CSV row per subcategory with its
// inclusion setting ("Success", "Failure", "Success and Failure",
// "No Auditing"). The first row seen for a subcategory wins; a duplicate is
// never allowed to overwrite an earlier value.
func ParseAuditPolicyCSV(r io.Reader) (*models.AuditPolicySnapshot, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	snapshot := models.NewAuditPolicySnapshot()
	subcategoryCol, settingCol := -1, -1

	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("error reading audit policy report: %w", err)
		}
		if len(record) == 0 {
			continue
		}

		if subcategoryCol < 0 {
			for i, col := range record {
				switch strings.TrimSpace(col) {
				case "Subcategory":
					subcategoryCol = i
				case "Inclusion Setting":
					settingCol = i
				}
			}
			if subcategoryCol < 0 || settingCol < 0 {
				return nil, fmt.Errorf("audit policy report missing expected columns")
			}
			continue
		}

		if len(record) <= subcategoryCol || len(record) <= settingCol {
			continue
		}
		snapshot.Set(record[subcategoryCol], strings.TrimSpace(record[settingCol]))
	}

	if snapshot.Len() == 0 {
		return nil, fmt.Errorf("audit policy report contained no subcategories")
	}
	return snapshot, nil
}
