package glbackend

import (
	"unsafe"

	"github.com/go-gl/gl/v4.3-core/gl"
	"github.com/larch3d/larch/engine/math3d"
)

// Vertex is the interleaved vertex layout shared by every mesh:
// position (location 0), normal (1), color (2), uv (3).
type Vertex struct {
	Position math3d.Vec3
	Normal   math3d.Vec3
	Color    math3d.Vec4
	UV       math3d.Vec2
}

const vertexStride = int32(unsafe.Sizeof(Vertex{}))

type VertexArray struct{ id uint32 }

func NewVertexArray() *VertexArray {
	va := &VertexArray{}
	gl.GenVertexArrays(1, &va.id)
	return va
}

func (va *VertexArray) Bind()   { gl.BindVertexArray(va.id) }
func (va *VertexArray) Unbind() { gl.BindVertexArray(0) }

func (va *VertexArray) Release() {
	if va.id != 0 {
		gl.DeleteVertexArrays(1, &va.id)
		va.id = 0
	}
}

type VertexBuffer struct{ id uint32 }

func NewVertexBuffer(vertices []Vertex) *VertexBuffer {
	vb := &VertexBuffer{}
	gl.GenBuffers(1, &vb.id)
	gl.BindBuffer(gl.ARRAY_BUFFER, vb.id)
	gl.BufferData(gl.ARRAY_BUFFER, len(vertices)*int(vertexStride), gl.Ptr(vertices), gl.STATIC_DRAW)

	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointer(0, 3, gl.FLOAT, false, vertexStride, unsafe.Pointer(uintptr(0)))
	gl.EnableVertexAttribArray(1)
	gl.VertexAttribPointer(1, 3, gl.FLOAT, false, vertexStride, unsafe.Pointer(uintptr(3*4)))
	gl.EnableVertexAttribArray(2)
	gl.VertexAttribPointer(2, 4, gl.FLOAT, false, vertexStride, unsafe.Pointer(uintptr(6*4)))
	gl.EnableVertexAttribArray(3)
	gl.VertexAttribPointer(3, 2, gl.FLOAT, false, vertexStride, unsafe.Pointer(uintptr(10*4)))

	return vb
}

func (vb *VertexBuffer) Unbind() { gl.BindBuffer(gl.ARRAY_BUFFER, 0) }

func (vb *VertexBuffer) Release() {
	if vb.id != 0 {
		gl.DeleteBuffers(1, &vb.id)
		vb.id = 0
	}
}

type IndexBuffer struct {
	id    uint32
	count int32
}

func NewIndexBuffer(indices []uint32) *IndexBuffer {
	ib := &IndexBuffer{count: int32(len(indices))}
	gl.GenBuffers(1, &ib.id)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, ib.id)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(indices)*4, gl.Ptr(indices), gl.STATIC_DRAW)
	return ib
}

func (ib *IndexBuffer) Bind()        { gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, ib.id) }
func (ib *IndexBuffer) Unbind()      { gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, 0) }
func (ib *IndexBuffer) Count() int32 { return ib.count }

func (ib *IndexBuffer) Release() {
	if ib.id != 0 {
		gl.DeleteBuffers(1, &ib.id)
		ib.id = 0
	}
}

// DynamicVertexBuffer streams vertex data that changes every frame, such
// as text quads. Capacity is fixed at creation; Update overwrites a prefix.
type DynamicVertexBuffer struct {
	id       uint32
	capacity int
}

func NewDynamicVertexBuffer(maxVertices int) *DynamicVertexBuffer {
	vb := &DynamicVertexBuffer{capacity: maxVertices}
	gl.GenBuffers(1, &vb.id)
	gl.BindBuffer(gl.ARRAY_BUFFER, vb.id)
	gl.BufferData(gl.ARRAY_BUFFER, maxVertices*int(vertexStride), nil, gl.DYNAMIC_DRAW)

	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointer(0, 3, gl.FLOAT, false, vertexStride, unsafe.Pointer(uintptr(0)))
	gl.EnableVertexAttribArray(1)
	gl.VertexAttribPointer(1, 3, gl.FLOAT, false, vertexStride, unsafe.Pointer(uintptr(3*4)))
	gl.EnableVertexAttribArray(2)
	gl.VertexAttribPointer(2, 4, gl.FLOAT, false, vertexStride, unsafe.Pointer(uintptr(6*4)))
	gl.EnableVertexAttribArray(3)
	gl.VertexAttribPointer(3, 2, gl.FLOAT, false, vertexStride, unsafe.Pointer(uintptr(10*4)))

	return vb
}

func (vb *DynamicVertexBuffer) Capacity() int { return vb.capacity }

// Update uploads vertices to the front of the buffer. Anything past
// capacity is dropped.
func (vb *DynamicVertexBuffer) Update(vertices []Vertex) int {
	if len(vertices) > vb.capacity {
		vertices = vertices[:vb.capacity]
	}
	if len(vertices) == 0 {
		return 0
	}
	gl.BindBuffer(gl.ARRAY_BUFFER, vb.id)
	gl.BufferSubData(gl.ARRAY_BUFFER, 0, len(vertices)*int(vertexStride), gl.Ptr(vertices))
	return len(vertices)
}

func (vb *DynamicVertexBuffer) Bind()   { gl.BindBuffer(gl.ARRAY_BUFFER, vb.id) }
func (vb *DynamicVertexBuffer) Unbind() { gl.BindBuffer(gl.ARRAY_BUFFER, 0) }

func (vb *DynamicVertexBuffer) Release() {
	if vb.id != 0 {
		gl.DeleteBuffers(1, &vb.id)
		vb.id = 0
	}
}

// StorageBuffer is a shader storage buffer used to pack a variable light
// count per frame instead of fixed-size uniform arrays.
type StorageBuffer struct{ id uint32 }

func NewStorageBuffer() *StorageBuffer {
	b := &StorageBuffer{}
	gl.GenBuffers(1, &b.id)
	return b
}

// SetData re-uploads the whole buffer. ptr/size describe a tightly packed
// std430 payload built by the caller.
func (b *StorageBuffer) SetData(ptr unsafe.Pointer, size int) {
	gl.BindBuffer(gl.SHADER_STORAGE_BUFFER, b.id)
	gl.BufferData(gl.SHADER_STORAGE_BUFFER, size, ptr, gl.DYNAMIC_DRAW)
	gl.BindBuffer(gl.SHADER_STORAGE_BUFFER, 0)
}

// Bind attaches the buffer to an SSBO binding point.
func (b *StorageBuffer) Bind(binding uint32) {
	gl.BindBufferBase(gl.SHADER_STORAGE_BUFFER, binding, b.id)
}

func (b *StorageBuffer) Release() {
	if b.id != 0 {
		gl.DeleteBuffers(1, &b.id)
		b.id = 0
	}
}
