package dataset

// Select produces a new dataset containing a copy of every table whose name
// exactly matches one of the requested names. Requested names with no matching
// table are silently omitted; selection never fails. Original insertion order
// is preserved regardless of the order names were requested in.
func (d *Dataset) Select(names ...string) Dataset {
	requested := make(map[string]struct{}, len(names))
	for _, n := range names {
		requested[n] = struct{}{}
	}

	var out Dataset
	for i := range d.Tables {
		if _, ok := requested[d.Tables[i].Name]; ok {
			out.Tables = append(out.Tables, d.Tables[i].Clone())
		}
	}
	return out
}
