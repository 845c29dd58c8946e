// Package generator produces synthetic COCO datasets for exercising
// annotation viewers and comparison tools.
//
// A run renders one or more white canvases with randomly placed filled
// shapes, writes each canvas as a PNG and writes a COCO annotation file
// describing every shape:
//
//	g := generator.New()
//	res, err := g.Generate(generator.Config{
//	    Width:     640,
//	    Height:    480,
//	    OutputDir: "/tmp/sample",
//	    IncludePairJSON: true,
//	})
//
// Output files in OutputDir:
//
//	{filename}-image.png            single image
//	{filename}-image-{n}.png        n = 1.. when ImageCount > 1
//	{filename}-annotation.json      the dataset
//	{filename}-pair.json            optional derived dataset
//
// The pair dataset imitates a second annotator: some annotations are copied
// exactly, some are shifted, some are dropped, some are duplicated, and a
// handful of unrelated rectangles are added. It is meant to be diffed
// against the primary dataset.
package generator
