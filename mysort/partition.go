package mysort

// Split cuts data into w contiguous partitions with ids 1..w. The first
// len(data)%w partitions hold one extra element, so sizes differ by at
// most one. Partitions alias data.
func Split(data []int, w int) []*Partition {
	if w < 1 {
		return nil
	}
	size, extra := len(data)/w, len(data)%w
	parts := make([]*Partition, w)
	start := 0
	for i := range parts {
		n := size
		if i < extra {
			n++
		}
		parts[i] = &Partition{ID: i + 1, Start: start, Data: data[start : start+n : start+n]}
		start += n
	}
	return parts
}

// partition validates cfg and data and splits data into cfg.Workers
// partitions. Every element is checked against [0, cfg.MaxKey] so that a
// bad element aborts the run before anything is dispatched.
func partition(cfg Config, data []int) ([]*Partition, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return nil, &ConfigurationError{Field: "dataset", Reason: "dataset is empty"}
	}
	parts := Split(data, cfg.Workers)
	for _, p := range parts {
		for i, v := range p.Data {
			if v < 0 || v > cfg.MaxKey {
				return nil, &MalformedInputError{
					Partition: p.ID,
					Index:     p.Start + i,
					Value:     v,
					MaxKey:    cfg.MaxKey,
				}
			}
		}
	}
	return parts, nil
}
