package capability

const (
	yuv8In = FormatYUV420SP8 | FormatYUV420P8 | FormatYUV422SP8 | FormatYUV422P8
	yuv10  = FormatYUV420SP10 | FormatYUV420P10 | FormatYUV422SP10 | FormatYUV422P10
)

// Rows holds the base envelope of every known revision, keyed by its
// single-bit HWVersion.
var Rows = map[HWVersion]Row{
	RGA1: {
		Version:       RGA1,
		InputMax:      Resolution{8192, 8192},
		OutputMax:     Resolution{2048, 2048},
		ByteStride:    4,
		ScaleLimit:    8,
		Performance:   1,
		InputFormats:  FormatRGB | FormatARGB16 | FormatBPP | yuv8In,
		OutputFormats: FormatRGB | FormatARGB16 | FormatRGBA16 | yuv8In,
		Features:      FeatureColorFill | FeatureColorPalette | FeatureROP,
	},
	RGA1Plus: {
		Version:       RGA1Plus,
		InputMax:      Resolution{8192, 8192},
		OutputMax:     Resolution{4096, 4096},
		ByteStride:    4,
		ScaleLimit:    8,
		Performance:   1,
		InputFormats:  FormatRGB | FormatARGB16 | FormatBPP | yuv8In,
		OutputFormats: FormatRGB | FormatARGB16 | FormatRGBA16 | yuv8In,
		Features:      FeatureColorFill | FeatureColorPalette,
	},
	RGA2: {
		Version:              RGA2,
		InputMax:             Resolution{8192, 8192},
		OutputMax:            Resolution{4096, 4096},
		ByteStride:           4,
		ScaleLimit:           16,
		Performance:          2,
		InputFormats:         FormatRGB | FormatARGB16 | yuv8In,
		OutputFormats:        FormatRGB | FormatARGB16 | FormatRGBA16 | yuv8In,
		Features:             FeatureColorFill | FeatureColorPalette | FeatureROP,
		ScaleVerBicubicLimit: 1928,
	},
	RGA2Lite0: {
		Version:              RGA2Lite0,
		InputMax:             Resolution{8192, 8192},
		OutputMax:            Resolution{4096, 4096},
		ByteStride:           4,
		ScaleLimit:           8,
		Performance:          2,
		InputFormats:         FormatRGB | FormatARGB16 | yuv8In,
		OutputFormats:        FormatRGB | FormatARGB16 | FormatRGBA16 | yuv8In,
		Features:             FeatureColorFill | FeatureColorPalette | FeatureROP,
		ScaleVerBicubicLimit: 1928,
	},
	RGA2Lite1: {
		Version:              RGA2Lite1,
		InputMax:             Resolution{8192, 8192},
		OutputMax:            Resolution{4096, 4096},
		ByteStride:           4,
		ScaleLimit:           8,
		Performance:          2,
		InputFormats:         FormatRGB | FormatARGB16 | yuv8In | yuv10,
		OutputFormats:        FormatRGB | FormatARGB16 | FormatRGBA16 | yuv8In,
		Features:             FeatureColorFill | FeatureColorPalette,
		ScaleVerBicubicLimit: 1928,
	},
	RGA2Enhance: {
		Version:              RGA2Enhance,
		InputMax:             Resolution{8192, 8192},
		OutputMax:            Resolution{4096, 4096},
		ByteStride:           4,
		ScaleLimit:           16,
		Performance:          2,
		InputFormats:         FormatRGB | FormatARGB16 | yuv8In | yuv10,
		OutputFormats:        FormatRGB | FormatARGB16 | FormatRGBA16 | yuv8In | FormatYUYV420 | FormatYUYV422,
		Features:             FeatureColorFill | FeatureColorPalette | FeatureROP,
		ScaleVerBicubicLimit: 1928,
	},
	RGA2Pro: {
		Version:     RGA2Pro,
		InputMax:    Resolution{8192, 8192},
		OutputMax:   Resolution{8192, 8192},
		ByteStride:  4,
		ScaleLimit:  16,
		Performance: 2,
		InputFormats: FormatRGB | FormatARGB16 | FormatYUV400 | yuv8In | FormatYUV444SP8 | yuv10 |
			FormatYUYV422 | FormatRGBA2BPP | FormatAlpha8,
		OutputFormats: FormatRGB | FormatARGB16 | FormatRGBA16 | FormatY4 | FormatYUV400 | yuv8In |
			FormatYUV444SP8 | FormatYUYV420 | FormatYUYV422 | FormatY8,
		Features: FeatureColorFill | FeatureColorPalette | FeatureROP | FeatureQuantize |
			FeatureSrc1R2YCSC | FeatureDstFullCSC | FeatureMosaic | FeatureOSD |
			FeaturePreIntr | FeatureAlphaBitMap,
		ScaleVerBicubicLimit: 1928,
	},
	RGA2Lite2: {
		Version:       RGA2Lite2,
		InputMax:      Resolution{2880, 1620},
		OutputMax:     Resolution{2880, 1620},
		ByteStride:    4,
		ScaleLimit:    16,
		Performance:   2,
		InputFormats:  FormatRGB | FormatARGB16 | FormatYUV400 | yuv8In | yuv10 | FormatYUYV422,
		OutputFormats: FormatRGB | FormatARGB16 | FormatRGBA16 | FormatYUV400 | yuv8In | FormatYUYV422,
		Features:      FeatureColorFill | FeatureColorPalette,
	},
	RGA3: {
		Version:     RGA3,
		InputMax:    Resolution{8176, 8176},
		OutputMax:   Resolution{8128, 8128},
		ByteStride:  16,
		ScaleLimit:  8,
		Performance: 4,
		InputFormats: FormatRGB | FormatYUV420SP8 | FormatYUV422SP8 | FormatYUV420SP10 |
			FormatYUV422SP10 | FormatYUYV422,
		OutputFormats: FormatRGB | FormatYUV420SP8 | FormatYUV422SP8 | FormatYUV420SP10 |
			FormatYUV422SP10 | FormatYUYV422,
		Features:             FeatureFBC | FeatureBlendYUV | FeatureBT2020,
		ScaleVerBicubicLimit: 8128,
	},
}

// BaseRow returns the static row for a single revision bit.
func BaseRow(v HWVersion) (Row, bool) {
	r, ok := Rows[v]
	return r, ok
}
