package reconcile

import "strings"

// InvalidItem pairs a confirmed-invalid item with the fault that named it.
type InvalidItem struct {
	Item  Item
	Fault FaultDetail
}

// Resolution partitions a rejected chunk. Invalid and Retry together cover
// every item of the chunk exactly once; Orphans are faults that named no
// item in the chunk at all.
type Resolution struct {
	// Invalid holds items the API explicitly cited as offending, with the
	// fault detail attached.
	Invalid []InvalidItem

	// Retry holds the innocent bystanders: items caught in the batch-wide
	// rejection without being named by any fault. They are eligible for
	// resubmission.
	Retry []Item

	// Orphans holds faults whose identifier matched nothing in the chunk.
	// An inconsistent API response is logged as an anomaly by the caller and
	// must not block resubmission of the remainder.
	Orphans []FaultDetail
}

// Resolve matches each fault to chunk items by identifier, case-insensitive.
// A fault that names a domain appearing several times in the chunk marks
// every occurrence; when several faults name the same domain the first one
// wins.
func Resolve(chunk []Item, faults []FaultDetail) Resolution {
	byDomain := make(map[string]FaultDetail, len(faults))
	for _, f := range faults {
		key := strings.ToLower(strings.TrimSpace(f.Domain))
		if key == "" {
			continue
		}
		if _, seen := byDomain[key]; !seen {
			byDomain[key] = f
		}
	}

	var res Resolution
	matched := make(map[string]bool, len(byDomain))
	for _, item := range chunk {
		if fault, ok := byDomain[item.Domain]; ok {
			res.Invalid = append(res.Invalid, InvalidItem{Item: item, Fault: fault})
			matched[item.Domain] = true
		} else {
			res.Retry = append(res.Retry, item)
		}
	}

	// Collect orphans in fault order for deterministic logging.
	reported := make(map[string]bool, len(byDomain))
	for _, f := range faults {
		key := strings.ToLower(strings.TrimSpace(f.Domain))
		if key == "" || matched[key] || reported[key] {
			continue
		}
		res.Orphans = append(res.Orphans, f)
		reported[key] = true
	}

	return res
}
