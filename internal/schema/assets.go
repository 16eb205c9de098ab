package schema

// Paths returns the files the asset references, relative to its unit directory.
func (a *BasicAsset) Paths() []string {
	if a == nil || a.MarkdownAsset == nil {
		return nil
	}
	return []string{a.MarkdownAsset.Path}
}

// Paths returns the files the asset references, relative to its unit directory.
func (a ExerciseAsset) Paths() []string {
	var paths []string
	switch {
	case a.FlashcardAsset != nil:
		paths = append(paths, a.FlashcardAsset.FrontPath)
		if a.FlashcardAsset.BackPath != "" {
			paths = append(paths, a.FlashcardAsset.BackPath)
		}
	case a.SoundSliceAsset != nil:
		if a.SoundSliceAsset.Backup != "" {
			paths = append(paths, a.SoundSliceAsset.Backup)
		}
	case a.BasicAsset != nil:
		paths = append(paths, a.BasicAsset.Paths()...)
	}
	return paths
}

// AssetPaths lists every file referenced by the course manifest.
func (m *CourseManifest) AssetPaths() []string {
	return append(m.CourseMaterial.Paths(), m.CourseInstructions.Paths()...)
}

// AssetPaths lists every file referenced by the lesson manifest.
func (m *LessonManifest) AssetPaths() []string {
	return append(m.LessonMaterial.Paths(), m.LessonInstructions.Paths()...)
}

// AssetPaths lists every file referenced by the exercise manifest.
func (m *ExerciseManifest) AssetPaths() []string {
	return m.ExerciseAsset.Paths()
}

// Normalize fills the fields the engine expects to always be present.
func (m *CourseManifest) Normalize() {
	if m.Dependencies == nil {
		m.Dependencies = []string{}
	}
}

// Normalize fills the fields the engine expects to always be present.
func (m *LessonManifest) Normalize() {
	if m.Dependencies == nil {
		m.Dependencies = []string{}
	}
}
