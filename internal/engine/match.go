package engine

// matchFile applies every applicable rule to one file's content. Patterns
// use global semantics: a rule fires once per occurrence, not once per
// file, and rules never short-circuit each other, so a generic rule and a
// provider-specific rule may both fire on the same text.
func (s *scanState) matchFile(rel, base, content string) {
	for _, r := range s.cfg.Rules.Rules() {
		if r.Structural() {
			continue
		}
		if !r.AppliesTo(base) {
			continue
		}
		for _, re := range r.Patterns {
			for _, m := range re.FindAllString(content, -1) {
				s.collector.add(r, rel, m, content)
			}
		}
	}
}
