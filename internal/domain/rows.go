package domain

// SuccessRows builds one row per entry, in entry order, copying name and
// value verbatim.
func SuccessRows(host string, site Site, entries []ConnectionStringEntry) []ReportRow {
	rows := make([]ReportRow, 0, len(entries))
	for _, e := range entries {
		row := baseRow(host, site)
		row.ConnectionStringName = e.Name
		row.ConnectionStringValue = e.ConnectionString
		row.Source = SourceWebConfig
		row.Status = StatusSuccess
		rows = append(rows, row)
	}
	return rows
}

// NoStringsRow builds the placeholder row for a site without entries.
func NoStringsRow(host string, site Site) ReportRow {
	row := baseRow(host, site)
	row.Status = StatusNoStringsFound
	return row
}

// ErrorRow builds the placeholder row for a site whose lookup failed.
func ErrorRow(host string, site Site, err error) ReportRow {
	row := baseRow(host, site)
	row.Status = statusErrorPrefix + err.Error()
	return row
}

// RowsFor maps a site result to its report rows. The result is never empty.
func RowsFor(host string, res SiteResult) []ReportRow {
	switch {
	case res.Err != nil:
		return []ReportRow{ErrorRow(host, res.Site, res.Err)}
	case len(res.Entries) == 0:
		return []ReportRow{NoStringsRow(host, res.Site)}
	default:
		return SuccessRows(host, res.Site, res.Entries)
	}
}

func baseRow(host string, site Site) ReportRow {
	return ReportRow{
		SystemName:   host,
		SiteName:     site.Name,
		SiteID:       site.ID,
		PhysicalPath: site.PhysicalPath,
	}
}
