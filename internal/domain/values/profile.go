package values

// ShaderProfile is the shading-language dialect passed to the compiler's
// --profile flag.
type ShaderProfile string

const (
	// ProfileMetal targets Apple's Metal shading language.
	ProfileMetal ShaderProfile = "metal"
	// ProfileGLSL440 targets GLSL 4.40.
	ProfileGLSL440 ShaderProfile = "440"
)

// ProfileFor returns the shader profile for a platform.
// macOS uses Metal; OpenGL is used for everything else.
func ProfileFor(p PlatformID) ShaderProfile {
	if p == PlatformOSX {
		return ProfileMetal
	}
	return ProfileGLSL440
}

// String returns the profile as passed to the compiler.
func (s ShaderProfile) String() string {
	return string(s)
}

// DirName returns the name of the output subdirectory compiled shaders of
// this profile are written to. The numeric GLSL version is stored under "glsl".
func (s ShaderProfile) DirName() string {
	if s == ProfileGLSL440 {
		return "glsl"
	}
	return string(s)
}
