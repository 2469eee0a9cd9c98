package dedupe

// Size thresholds driving refiner preconditions (§4.4-§4.6), grounded
// exactly on original_source/duplicate/core.py's module constants.
const (
	// lowSize is the lower edge of the signature refiner's skip window.
	// The Python original branches on os.name == 'nt' (900 B vs 60 B);
	// Go has no ambient build target for that distinction worth making,
	// so the POSIX value is kept uniformly and the NT figure is
	// documented here rather than split into a platform file.
	lowSize = 60

	// minSignatureSize is the upper edge of the signature refiner's skip
	// window (≈100 KiB): sizes in (lowSize, minSignatureSize) are small
	// enough that a full hash costs no more than a signature.
	minSignatureSize = 100 << 10

	// bigFileSize is the side-sum rule refiner's lower size bound
	// (≈100 MiB): only files at least this large benefit from sampling
	// instead of a full streaming hash.
	bigFileSize = 100 << 20

	// sizeRatePercent is the side-sum chunk-sizing rate (§4.5).
	sizeRatePercent = 10

	// sideBlockSize is the block-size unit side-sum chunks snap down to
	// when no device-specific block size is available.
	sideBlockSize = 4 << 10

	// signatureWindow is the head/tail window size hashed by the
	// signature refiner (§4.4's "≈261 bytes by default").
	signatureWindow = 261

	// hashBlockSize is the baseline I/O buffer unit the hash refiner
	// rounds its read buffer to/from, alongside the device's block size.
	hashBlockSize = 4 << 10
)
