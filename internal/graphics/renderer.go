package graphics

import (
	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
)

// Unit cube centered at the origin, position + normal per vertex.
var cubeVertices = []float32{
	-0.5, -0.5, 0.5, 0, 0, 1,
	0.5, -0.5, 0.5, 0, 0, 1,
	0.5, 0.5, 0.5, 0, 0, 1,
	0.5, 0.5, 0.5, 0, 0, 1,
	-0.5, 0.5, 0.5, 0, 0, 1,
	-0.5, -0.5, 0.5, 0, 0, 1,
	0.5, -0.5, -0.5, 0, 0, -1,
	-0.5, -0.5, -0.5, 0, 0, -1,
	-0.5, 0.5, -0.5, 0, 0, -1,
	-0.5, 0.5, -0.5, 0, 0, -1,
	0.5, 0.5, -0.5, 0, 0, -1,
	0.5, -0.5, -0.5, 0, 0, -1,
	-0.5, -0.5, -0.5, -1, 0, 0,
	-0.5, -0.5, 0.5, -1, 0, 0,
	-0.5, 0.5, 0.5, -1, 0, 0,
	-0.5, 0.5, 0.5, -1, 0, 0,
	-0.5, 0.5, -0.5, -1, 0, 0,
	-0.5, -0.5, -0.5, -1, 0, 0,
	0.5, -0.5, 0.5, 1, 0, 0,
	0.5, -0.5, -0.5, 1, 0, 0,
	0.5, 0.5, -0.5, 1, 0, 0,
	0.5, 0.5, -0.5, 1, 0, 0,
	0.5, 0.5, 0.5, 1, 0, 0,
	0.5, -0.5, 0.5, 1, 0, 0,
	-0.5, 0.5, 0.5, 0, 1, 0,
	0.5, 0.5, 0.5, 0, 1, 0,
	0.5, 0.5, -0.5, 0, 1, 0,
	0.5, 0.5, -0.5, 0, 1, 0,
	-0.5, 0.5, -0.5, 0, 1, 0,
	-0.5, 0.5, 0.5, 0, 1, 0,
	-0.5, -0.5, -0.5, 0, -1, 0,
	0.5, -0.5, -0.5, 0, -1, 0,
	0.5, -0.5, 0.5, 0, -1, 0,
	0.5, -0.5, 0.5, 0, -1, 0,
	-0.5, -0.5, 0.5, 0, -1, 0,
	-0.5, -0.5, -0.5, 0, -1, 0,
}

var boxVertexShader = `#version 330 core
layout(location = 0) in vec3 aPos;
layout(location = 1) in vec3 aNormal;
layout(location = 2) in vec3 instancePos;
layout(location = 3) in vec3 instanceScale;
layout(location = 4) in vec3 instanceColor;
uniform mat4 view;
uniform mat4 proj;
out vec3 Normal;
out vec3 FragPos;
out vec3 Color;
void main() {
	vec3 pos = aPos * instanceScale + instancePos;
	FragPos = pos;
	Normal = aNormal;
	Color = instanceColor;
	gl_Position = proj * view * vec4(pos, 1.0);
}
`

var boxFragmentShader = `#version 330 core
in vec3 Normal;
in vec3 FragPos;
in vec3 Color;
uniform vec3 lightDir;
out vec4 FragColor;
void main() {
	vec3 n = normalize(Normal);
	float diff = max(dot(n, -lightDir), 0.3);
	FragColor = vec4(Color * diff, 1.0);
}
`

var actorVertexShader = `#version 330 core
layout(location = 0) in vec3 aPos;
layout(location = 1) in vec3 aNormal;
uniform mat4 model;
uniform mat4 view;
uniform mat4 proj;
out vec3 Normal;
void main() {
	Normal = mat3(model) * aNormal;
	gl_Position = proj * view * model * vec4(aPos, 1.0);
}
`

var actorFragmentShader = `#version 330 core
in vec3 Normal;
uniform vec3 color;
uniform vec3 lightDir;
out vec4 FragColor;
void main() {
	vec3 n = normalize(Normal);
	float diff = max(dot(n, -lightDir), 0.3);
	FragColor = vec4(color * diff, 1.0);
}
`

// BoxInstance is one cube draw: world position, full extents, display color.
type BoxInstance struct {
	Position mgl32.Vec3
	Scale    mgl32.Vec3
	Color    [3]float32
}

// instFloats is the per-instance attribute count: pos3 + scale3 + color3.
const instFloats = 9

// Renderer draws the scene as cubes: one instanced pass for static geometry
// and pickups, one model-matrix pass per oriented actor.
type Renderer struct {
	boxShader   *Shader
	actorShader *Shader

	cubeVAO     uint32
	cubeVBO     uint32
	instanceVBO uint32

	actorVAO uint32
	actorVBO uint32

	projection mgl32.Mat4
	fov        float32
	lightDir   mgl32.Vec3
}

// NewRenderer builds the GL objects. Requires a current context.
func NewRenderer(width, height int, fov float32) (*Renderer, error) {
	boxShader, err := NewShader(boxVertexShader, boxFragmentShader)
	if err != nil {
		return nil, err
	}
	actorShader, err := NewShader(actorVertexShader, actorFragmentShader)
	if err != nil {
		return nil, err
	}

	r := &Renderer{
		boxShader:   boxShader,
		actorShader: actorShader,
		fov:         fov,
		lightDir:    mgl32.Vec3{-0.5, -1.0, -0.3}.Normalize(),
	}

	gl.GenVertexArrays(1, &r.cubeVAO)
	gl.BindVertexArray(r.cubeVAO)

	gl.GenBuffers(1, &r.cubeVBO)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.cubeVBO)
	gl.BufferData(gl.ARRAY_BUFFER, len(cubeVertices)*4, gl.Ptr(cubeVertices), gl.STATIC_DRAW)

	stride := int32(6 * 4)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointer(0, 3, gl.FLOAT, false, stride, gl.PtrOffset(0))
	gl.EnableVertexAttribArray(1)
	gl.VertexAttribPointer(1, 3, gl.FLOAT, false, stride, gl.PtrOffset(3*4))

	gl.GenBuffers(1, &r.instanceVBO)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.instanceVBO)
	instStride := int32(instFloats * 4)
	gl.EnableVertexAttribArray(2)
	gl.VertexAttribPointer(2, 3, gl.FLOAT, false, instStride, gl.PtrOffset(0))
	gl.VertexAttribDivisor(2, 1)
	gl.EnableVertexAttribArray(3)
	gl.VertexAttribPointer(3, 3, gl.FLOAT, false, instStride, gl.PtrOffset(3*4))
	gl.VertexAttribDivisor(3, 1)
	gl.EnableVertexAttribArray(4)
	gl.VertexAttribPointer(4, 3, gl.FLOAT, false, instStride, gl.PtrOffset(6*4))
	gl.VertexAttribDivisor(4, 1)

	// A second VAO over the same cube mesh for the actor pass; the instanced
	// attributes must not leak into it.
	gl.GenVertexArrays(1, &r.actorVAO)
	gl.BindVertexArray(r.actorVAO)
	gl.GenBuffers(1, &r.actorVBO)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.actorVBO)
	gl.BufferData(gl.ARRAY_BUFFER, len(cubeVertices)*4, gl.Ptr(cubeVertices), gl.STATIC_DRAW)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointer(0, 3, gl.FLOAT, false, stride, gl.PtrOffset(0))
	gl.EnableVertexAttribArray(1)
	gl.VertexAttribPointer(1, 3, gl.FLOAT, false, stride, gl.PtrOffset(3*4))

	gl.BindVertexArray(0)

	gl.Enable(gl.DEPTH_TEST)
	gl.Enable(gl.CULL_FACE)
	gl.CullFace(gl.BACK)

	r.UpdateViewport(width, height)
	return r, nil
}

// UpdateViewport rebuilds the projection after a resize.
func (r *Renderer) UpdateViewport(width, height int) {
	if height == 0 {
		height = 1
	}
	gl.Viewport(0, 0, int32(width), int32(height))
	aspect := float32(width) / float32(height)
	r.projection = mgl32.Perspective(mgl32.DegToRad(r.fov), aspect, 0.1, 500.0)
}

// Begin clears the frame with the course sky color.
func (r *Renderer) Begin(sky [3]float32) {
	gl.ClearColor(sky[0], sky[1], sky[2], 1.0)
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
}

// DrawBoxes renders all instances in a single instanced call.
func (r *Renderer) DrawBoxes(instances []BoxInstance, view mgl32.Mat4) {
	if len(instances) == 0 {
		return
	}

	data := make([]float32, 0, len(instances)*instFloats)
	for _, in := range instances {
		data = append(data,
			in.Position.X(), in.Position.Y(), in.Position.Z(),
			in.Scale.X(), in.Scale.Y(), in.Scale.Z(),
			in.Color[0], in.Color[1], in.Color[2],
		)
	}

	r.boxShader.Use()
	r.boxShader.SetMatrix4("proj", &r.projection[0])
	r.boxShader.SetMatrix4("view", &view[0])
	r.boxShader.SetVector3("lightDir", r.lightDir.X(), r.lightDir.Y(), r.lightDir.Z())

	gl.BindVertexArray(r.cubeVAO)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.instanceVBO)
	gl.BufferData(gl.ARRAY_BUFFER, len(data)*4, gl.Ptr(data), gl.DYNAMIC_DRAW)
	gl.DrawArraysInstanced(gl.TRIANGLES, 0, int32(len(cubeVertices)/6), int32(len(instances)))
	gl.BindVertexArray(0)
}

// DrawActor renders one oriented cube: an actor with a yaw heading in
// degrees, scaled to its extents.
func (r *Renderer) DrawActor(pos, scale mgl32.Vec3, yaw float32, color [3]float32, view mgl32.Mat4) {
	model := mgl32.Translate3D(pos.X(), pos.Y(), pos.Z()).
		Mul4(mgl32.HomogRotate3DY(mgl32.DegToRad(yaw))).
		Mul4(mgl32.Scale3D(scale.X(), scale.Y(), scale.Z()))

	r.actorShader.Use()
	r.actorShader.SetMatrix4("proj", &r.projection[0])
	r.actorShader.SetMatrix4("view", &view[0])
	r.actorShader.SetMatrix4("model", &model[0])
	r.actorShader.SetVector3("color", color[0], color[1], color[2])
	r.actorShader.SetVector3("lightDir", r.lightDir.X(), r.lightDir.Y(), r.lightDir.Z())

	gl.BindVertexArray(r.actorVAO)
	gl.DrawArrays(gl.TRIANGLES, 0, int32(len(cubeVertices)/6))
	gl.BindVertexArray(0)
}

// Dispose releases the GL objects.
func (r *Renderer) Dispose() {
	gl.DeleteBuffers(1, &r.cubeVBO)
	gl.DeleteBuffers(1, &r.instanceVBO)
	gl.DeleteBuffers(1, &r.actorVBO)
	gl.DeleteVertexArrays(1, &r.cubeVAO)
	gl.DeleteVertexArrays(1, &r.actorVAO)
	gl.DeleteProgram(r.boxShader.ID)
	gl.DeleteProgram(r.actorShader.ID)
}
