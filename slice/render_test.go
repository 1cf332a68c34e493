package slice_test

import (
	"io"
	"os"
	"testing"

	"github.com/fogleman/fauxgl"
	"github.com/nfnt/resize"
	"github.com/soypat/hyper"
	"github.com/soypat/hyper/slice"
	"gonum.org/v1/gonum/spatial/r3"
	"gonum.org/v1/plot/cmpimg"
)

const (
	// imgDelta a normalized imgDelta parameter to describe how close the matching
	// should be performed (imgDelta=0: perfect match, imgDelta=1, loose match)
	imgDelta = 0.02
)

type viewConfig struct {
	// what position (point) to look at
	lookat r3.Vec
	// which way is up (direction)
	up r3.Vec
	// where the camera/eye located at (point)
	eyepos r3.Vec
	far    float64
	near   float64
}

func TestCrossSectionRender(t *testing.T) {
	var defaultView = viewConfig{
		up:     r3.Vec{Z: 1},
		eyepos: r3.Vec{X: 3, Y: 3, Z: 3},
		near:   1,
		far:    10,
	}
	for _, test := range []struct {
		name     string
		defacto  string
		view     viewConfig
		sliceW   float32
		meshFunc func(t testing.TB) *hyper.Mesh
	}{
		{
			name:     "tesseract",
			defacto:  "testdata/defactoTesseract.png",
			meshFunc: tesseractMesh,
			sliceW:   0,
			view:     defaultView,
		},
		{
			name:     "pentatope",
			defacto:  "testdata/defactoPentatope.png",
			meshFunc: pentatopeMesh,
			sliceW:   0.2,
			view:     defaultView,
		},
		{
			name:     "16cell",
			defacto:  "testdata/defacto16Cell.png",
			meshFunc: hexadecachoronMesh,
			sliceW:   0.25,
			view:     defaultView,
		},
	} {
		stlPath := "test_" + test.name + ".stl"
		gotPng := "test_" + test.name + ".png"
		sliceToSTL(t, test.meshFunc(t), test.sliceW, stlPath)
		stlToPNG(t, stlPath, gotPng, test.view)
		if _, err := os.Stat(test.defacto); os.IsNotExist(err) {
			// First run on this machine: adopt the render as the
			// reference image for future runs.
			if err := os.MkdirAll("testdata", 0755); err != nil {
				t.Fatal(err)
			}
			if err := os.Rename(gotPng, test.defacto); err != nil {
				t.Fatal(err)
			}
			os.Remove(stlPath)
			continue
		}
		if !equalImages(t, gotPng, test.defacto) {
			t.Errorf("%s rendered image does not match expected image", test.name)
		}
		if !t.Failed() {
			// If test has not failed we remove the generated STL and PNG files.
			os.Remove(stlPath)
			os.Remove(gotPng)
		}
	}
}

func tesseractMesh(t testing.TB) *hyper.Mesh {
	m, err := hyper.Hypercube(hyper.Vec4{}, hyper.Vec4{X: 2, Y: 2, Z: 2, W: 2})
	if err != nil {
		t.Fatal(err)
	}
	return m
}

func pentatopeMesh(t testing.TB) *hyper.Mesh {
	m, err := hyper.Pentatope(hyper.Vec4{}, 1)
	if err != nil {
		t.Fatal(err)
	}
	return m
}

func hexadecachoronMesh(t testing.TB) *hyper.Mesh {
	m, err := hyper.Hexadecachoron(hyper.Vec4{}, 1)
	if err != nil {
		t.Fatal(err)
	}
	return m
}

func sliceToSTL(t testing.TB, m *hyper.Mesh, sliceW float32, filename string) {
	s, err := slice.NewSlicer(m, slice.Config{})
	if err != nil {
		t.Fatal(err)
	}
	model, err := s.Slice(slice.Params{SliceW: sliceW, Camera: hyper.IdentityTransform()})
	if err != nil {
		t.Fatal(err)
	}
	if err := slice.CreateSTL(filename, model); err != nil {
		t.Fatal(err)
	}
}

func stlToPNG(t testing.TB, stlName, outputname string, view viewConfig) {
	mesh, err := fauxgl.LoadSTL(stlName)
	if err != nil {
		t.Fatal(err)
	}
	const (
		width, height = 960, 540 // output width and height in pixels
		scale         = 1        // optional supersampling
		fovy          = 30       // vertical field of view in degrees
	)

	var (
		far    = view.far
		near   = view.near
		eye    = fauxgl.V(view.eyepos.X, view.eyepos.Y, view.eyepos.Z) // camera position
		center = fauxgl.V(view.lookat.X, view.lookat.Y, view.lookat.Z) // view center position
		up     = fauxgl.V(view.up.X, view.up.Y, view.up.Z)             // up vector
		light  = fauxgl.V(-0.75, 1, 0.25).Normalize()                  // light direction
		color  = fauxgl.HexColor("#468966")                            // object color
	)

	// fit mesh in a bi-unit cube centered at the origin
	mesh.BiUnitCube()
	// create a rendering context
	context := fauxgl.NewContext(width*scale, height*scale)
	context.ClearColorBufferWith(fauxgl.HexColor("#FFF8E3"))
	// create transformation matrix and light direction
	aspect := float64(width) / float64(height)
	matrix := fauxgl.LookAt(eye, center, up).Perspective(fovy, aspect, near, far)
	// use builtin phong shader
	shader := fauxgl.NewPhongShader(matrix, light, eye)
	shader.ObjectColor = color
	context.Shader = shader
	// render
	context.DrawMesh(mesh)
	// downsample image for antialiasing
	image := context.Image()
	image = resize.Resize(width, height, image, resize.Bilinear)
	err = fauxgl.SavePNG(outputname, image)
	if err != nil {
		t.Fatal(err)
	}
}

func equalImages(t *testing.T, png1, png2 string) bool {
	fp1, err := os.Open(png1)
	if err != nil {
		t.Fatal(err)
	}
	fp2, err := os.Open(png2)
	if err != nil {
		t.Fatal(err)
	}
	b1, err := io.ReadAll(fp1)
	if err != nil {
		t.Fatal(err)
	}
	b2, err := io.ReadAll(fp2)
	if err != nil {
		t.Fatal(err)
	}
	equal, err := cmpimg.EqualApprox("png", b1, b2, imgDelta)
	if err != nil {
		t.Fatal(err)
	}
	return equal
}
