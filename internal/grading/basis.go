package grading

// Basis is the fully-resolved grading basis for one subject or subject part
// within one exam: the effective full mark, pass mark and conversion target
// after override precedence has been applied.
type Basis struct {
	FullMark      float64
	PassMark      float64
	HasConversion bool
	ConvertToMark *float64
}

// Target returns the value the basis contributes to an exam's full total:
// the conversion target when conversion is enabled, the full mark otherwise.
func (b Basis) Target() float64 {
	if b.HasConversion && b.ConvertToMark != nil {
		return *b.ConvertToMark
	}

	return b.FullMark
}

// ResolveBasis applies the three-tier override precedence: a per-exam part
// setting wins outright, then a per-exam subject setting, then the stored
// defaults. ConvertToMark is only honoured when conversion is enabled and the
// target is non-zero.
func ResolveBasis(partSetting, subjectSetting *Basis, defaults Basis) Basis {
	resolved := defaults
	switch {
	case partSetting != nil:
		resolved = *partSetting
	case subjectSetting != nil:
		resolved = *subjectSetting
	}

	if !resolved.HasConversion {
		resolved.ConvertToMark = nil
	}
	if resolved.ConvertToMark != nil && *resolved.ConvertToMark == 0 {
		resolved.ConvertToMark = nil
	}

	return resolved
}

// Resolver resolves effective bases for an exam once and memoises them so a
// recompute pass reuses the same resolution for full totals and every mark.
type Resolver struct {
	subjectSettings map[uint]Basis
	partSettings    map[uint]Basis
	subjectDefaults map[uint]Basis
	partDefaults    map[uint]Basis

	subjectCache map[uint]Basis
	partCache    map[uint]Basis
}

// NewResolver builds a resolver from the exam's override rows and the
// subject/part defaults, all keyed by their record ids.
func NewResolver(subjectSettings, partSettings, subjectDefaults, partDefaults map[uint]Basis) *Resolver {
	if subjectSettings == nil {
		subjectSettings = map[uint]Basis{}
	}
	if partSettings == nil {
		partSettings = map[uint]Basis{}
	}
	if subjectDefaults == nil {
		subjectDefaults = map[uint]Basis{}
	}
	if partDefaults == nil {
		partDefaults = map[uint]Basis{}
	}

	return &Resolver{
		subjectSettings: subjectSettings,
		partSettings:    partSettings,
		subjectDefaults: subjectDefaults,
		partDefaults:    partDefaults,
		subjectCache:    map[uint]Basis{},
		partCache:       map[uint]Basis{},
	}
}

// ForSubject resolves the effective basis for a whole subject.
func (r *Resolver) ForSubject(subjectID uint) Basis {
	if cached, ok := r.subjectCache[subjectID]; ok {
		return cached
	}

	var subjectSetting *Basis
	if setting, ok := r.subjectSettings[subjectID]; ok {
		subjectSetting = &setting
	}

	resolved := ResolveBasis(nil, subjectSetting, r.subjectDefaults[subjectID])
	r.subjectCache[subjectID] = resolved

	return resolved
}

// ForPart resolves the effective basis for a subject part. A part-level exam
// setting takes precedence over the subject-level setting of the part's
// owning subject, which in turn beats the part's stored defaults.
func (r *Resolver) ForPart(partID, subjectID uint) Basis {
	if cached, ok := r.partCache[partID]; ok {
		return cached
	}

	var partSetting *Basis
	if setting, ok := r.partSettings[partID]; ok {
		partSetting = &setting
	}

	var subjectSetting *Basis
	if setting, ok := r.subjectSettings[subjectID]; ok {
		subjectSetting = &setting
	}

	resolved := ResolveBasis(partSetting, subjectSetting, r.partDefaults[partID])
	r.partCache[partID] = resolved

	return resolved
}

// HasPartSetting reports whether the exam carries a part-level override for
// the given part id. Subjects with any overridden part contribute to the
// exam's full total part by part instead of as a whole.
func (r *Resolver) HasPartSetting(partID uint) bool {
	_, ok := r.partSettings[partID]
	return ok
}
