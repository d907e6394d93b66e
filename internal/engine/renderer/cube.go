package renderer

// vertex is the interleaved layout uploaded to the GPU.
type vertex struct {
	Pos   [3]float32
	Color [3]float32
}

const vertexSize = 6 * 4

// cubeStrip is a unit cube (-1..1) as a single 14-vertex triangle strip,
// one colour per face.
var cubeStrip = []vertex{
	{[3]float32{1, 1, -1}, [3]float32{1, 0, 0}},
	{[3]float32{-1, 1, -1}, [3]float32{1, 0, 0}},
	{[3]float32{1, 1, 1}, [3]float32{1, 0, 0}},
	{[3]float32{-1, 1, 1}, [3]float32{0, 1, 0}},
	{[3]float32{-1, -1, 1}, [3]float32{0, 1, 0}},
	{[3]float32{-1, 1, -1}, [3]float32{0, 1, 0}},
	{[3]float32{-1, -1, -1}, [3]float32{0, 0, 1}},
	{[3]float32{1, 1, -1}, [3]float32{0, 0, 1}},
	{[3]float32{1, -1, -1}, [3]float32{0, 0, 1}},
	{[3]float32{1, 1, 1}, [3]float32{1, 1, 0}},
	{[3]float32{1, -1, 1}, [3]float32{1, 1, 0}},
	{[3]float32{-1, -1, 1}, [3]float32{1, 1, 0}},
	{[3]float32{1, -1, -1}, [3]float32{1, 0, 1}},
	{[3]float32{-1, -1, -1}, [3]float32{1, 0, 1}},
}

const cubeVertexShader = `#version 410 core
layout (location = 0) in vec3 aPosition;
layout (location = 1) in vec3 aColor;

uniform mat4 uProjView;

out vec3 vColor;

void main() {
    gl_Position = uProjView * vec4(aPosition, 1.0);
    vColor = aColor;
}
`

const cubeFragmentShader = `#version 410 core
in vec3 vColor;
out vec4 FragColor;

void main() {
    FragColor = vec4(vColor, 1.0);
}
`
