// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package render

import (
	_ "embed"
	"encoding/binary"
	"fmt"
	"math"
	"unsafe"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/sketch"
)

//go:embed shaders/triangles.wgsl
var trianglesShaderSource string

// viewportUniformSize is the size of the viewport uniform: vec2 size plus
// vec2 padding.
const viewportUniformSize = 16

// copyPitchAlignment is the row alignment required for texture-to-buffer
// copies.
const copyPitchAlignment = 256

// GPURenderer draws frames with a wgpu HAL device borrowed from the host.
//
// The whole frame is one indexed draw: the vertex list is uploaded as a
// vertex buffer (position float32x2, color float32x4, sketch.VertexStride
// bytes per vertex) and the index list as a uint32 index buffer.
//
// Surface targets are drawn into directly. Pixel targets are drawn into an
// offscreen RGBA texture and read back after the device goes idle.
//
// Example:
//
//	renderer, err := render.NewGPURenderer(app.GPUContextProvider())
//	if err != nil {
//	    renderer = nil // fall back to render.NewSoftwareRenderer()
//	}
type GPURenderer struct {
	handle DeviceHandle
	device hal.Device
	queue  hal.Queue

	shader        hal.ShaderModule
	uniformLayout hal.BindGroupLayout
	pipeLayout    hal.PipelineLayout
	pipelines     map[gputypes.TextureFormat]hal.RenderPipeline

	offscreen offscreenTexture
	closed    bool
}

// NewGPURenderer creates a GPU renderer on the host's device.
//
// The handle must expose HalDevice() and HalQueue(); otherwise ErrNoDevice
// is returned and the caller should use a SoftwareRenderer.
func NewGPURenderer(handle DeviceHandle) (*GPURenderer, error) {
	if handle == nil {
		return nil, ErrNoDevice
	}
	device, queue, err := halDevices(handle)
	if err != nil {
		return nil, err
	}
	r, err := NewGPURendererWithDevice(device, queue)
	if err != nil {
		return nil, err
	}
	r.handle = handle
	return r, nil
}

// NewGPURendererWithDevice creates a GPU renderer on an explicit HAL device
// and queue. The renderer does not take ownership of either.
func NewGPURendererWithDevice(device hal.Device, queue hal.Queue) (*GPURenderer, error) {
	if device == nil || queue == nil {
		return nil, ErrNoDevice
	}
	r := &GPURenderer{
		device:    device,
		queue:     queue,
		pipelines: make(map[gputypes.TextureFormat]hal.RenderPipeline),
	}
	if err := r.createLayouts(); err != nil {
		r.destroyPipelines()
		return nil, err
	}
	sketch.Logger().Info("gpu renderer created")
	return r, nil
}

// DeviceHandle returns the handle the renderer was created from, or nil
// when it was created with NewGPURendererWithDevice.
func (r *GPURenderer) DeviceHandle() DeviceHandle {
	return r.handle
}

// Capabilities returns the GPU renderer's capabilities.
func (r *GPURenderer) Capabilities() RendererCapabilities {
	return RendererCapabilities{
		IsGPU:                true,
		SupportsAntialiasing: false,
		SupportsSurfaces:     true,
		MaxTextureSize:       int(gputypes.DefaultLimits().MaxTextureDimension2D),
	}
}

// Render draws the frame to the target.
//
// A frame without a clear color is drawn over the target's contents. For
// pixel targets the current pixels are uploaded first so the result matches
// the software renderer.
func (r *GPURenderer) Render(target RenderTarget, frame *sketch.Frame) error {
	if r.closed {
		return ErrRendererClosed
	}
	if err := validate(target, frame); err != nil {
		return err
	}
	_, clearing := frame.Clear.Get()
	if frame.Empty() && !clearing && target.TextureView() == nil {
		return nil
	}

	w, h := uint32(target.Width()), uint32(target.Height()) //nolint:gosec // validated positive
	format := target.Format()

	var view hal.TextureView
	pixels := target.Pixels()
	if v := target.TextureView(); v != nil {
		tv, ok := v.(hal.TextureView)
		if !ok {
			return ErrUnsupportedTarget
		}
		view = tv
		pixels = nil
	} else {
		if pixels == nil || format != gputypes.TextureFormatRGBA8Unorm {
			return ErrUnsupportedTarget
		}
		if err := r.offscreen.ensure(r.device, w, h); err != nil {
			return err
		}
		view = r.offscreen.view
		if !clearing {
			if err := r.uploadPixels(pixels, target.Stride(), w, h); err != nil {
				return err
			}
		}
	}

	pipeline, err := r.ensurePipeline(format)
	if err != nil {
		return err
	}
	res, err := r.buildFrameResources(frame, w, h)
	if err != nil {
		return err
	}
	defer res.destroy(r.device)

	if err := r.encodeSubmit(frame, view, pipeline, res, pixels, target.Stride(), w, h); err != nil {
		return err
	}

	sketch.Logger().Debug("gpu frame rendered",
		"triangles", frame.Triangles(),
		"width", w,
		"height", h,
		"readback", pixels != nil)
	return nil
}

// Flush waits for all submitted GPU work to finish.
func (r *GPURenderer) Flush() error {
	if r.closed {
		return nil
	}
	if err := r.device.WaitIdle(); err != nil {
		return fmt.Errorf("render: wait idle: %w", err)
	}
	return nil
}

// Destroy releases the renderer's GPU resources. The borrowed device and
// queue stay alive. Safe to call more than once.
func (r *GPURenderer) Destroy() {
	if r.closed {
		return
	}
	_ = r.device.WaitIdle()
	r.offscreen.destroy(r.device)
	r.destroyPipelines()
	r.closed = true
	sketch.Logger().Info("gpu renderer destroyed")
}

// createLayouts compiles the shader and creates the bind group and
// pipeline layouts shared by every pipeline.
func (r *GPURenderer) createLayouts() error {
	if trianglesShaderSource == "" {
		return fmt.Errorf("render: triangle shader source is empty")
	}
	shader, err := r.device.CreateShaderModule(&hal.ShaderModuleDescriptor{
		Label:  "sketch_triangles_shader",
		Source: hal.ShaderSource{WGSL: trianglesShaderSource},
	})
	if err != nil {
		return fmt.Errorf("render: compile triangle shader: %w", err)
	}
	r.shader = shader

	uniformLayout, err := r.device.CreateBindGroupLayout(&hal.BindGroupLayoutDescriptor{
		Label: "sketch_viewport_layout",
		Entries: []gputypes.BindGroupLayoutEntry{
			{
				Binding:    0,
				Visibility: gputypes.ShaderStageVertex,
				Buffer:     &gputypes.BufferBindingLayout{Type: gputypes.BufferBindingTypeUniform},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("render: create viewport layout: %w", err)
	}
	r.uniformLayout = uniformLayout

	pipeLayout, err := r.device.CreatePipelineLayout(&hal.PipelineLayoutDescriptor{
		Label:            "sketch_pipe_layout",
		BindGroupLayouts: []hal.BindGroupLayout{r.uniformLayout},
	})
	if err != nil {
		return fmt.Errorf("render: create pipeline layout: %w", err)
	}
	r.pipeLayout = pipeLayout
	return nil
}

// ensurePipeline returns the pipeline for a color target format, creating
// it on first use.
func (r *GPURenderer) ensurePipeline(format gputypes.TextureFormat) (hal.RenderPipeline, error) {
	if p, ok := r.pipelines[format]; ok {
		return p, nil
	}
	premulBlend := gputypes.BlendStatePremultiplied()
	pipeline, err := r.device.CreateRenderPipeline(&hal.RenderPipelineDescriptor{
		Label:  "sketch_triangles_pipeline",
		Layout: r.pipeLayout,
		Vertex: hal.VertexState{
			Module:     r.shader,
			EntryPoint: "vs_main",
			Buffers:    vertexLayout(),
		},
		Fragment: &hal.FragmentState{
			Module:     r.shader,
			EntryPoint: "fs_main",
			Targets: []gputypes.ColorTargetState{
				{
					Format:    format,
					Blend:     &premulBlend,
					WriteMask: gputypes.ColorWriteMaskAll,
				},
			},
		},
		Primitive: gputypes.PrimitiveState{
			Topology: gputypes.PrimitiveTopologyTriangleList,
			CullMode: gputypes.CullModeNone,
		},
		Multisample: gputypes.MultisampleState{
			Count: 1,
			Mask:  0xFFFFFFFF,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("render: create pipeline for %v: %w", format, err)
	}
	r.pipelines[format] = pipeline
	return pipeline, nil
}

// destroyPipelines releases pipeline resources in reverse creation order.
func (r *GPURenderer) destroyPipelines() {
	for format, p := range r.pipelines {
		r.device.DestroyRenderPipeline(p)
		delete(r.pipelines, format)
	}
	if r.pipeLayout != nil {
		r.device.DestroyPipelineLayout(r.pipeLayout)
		r.pipeLayout = nil
	}
	if r.uniformLayout != nil {
		r.device.DestroyBindGroupLayout(r.uniformLayout)
		r.uniformLayout = nil
	}
	if r.shader != nil {
		r.device.DestroyShaderModule(r.shader)
		r.shader = nil
	}
}

// frameResources holds the per-frame buffers and bind group.
type frameResources struct {
	vertBuf    hal.Buffer
	indexBuf   hal.Buffer
	uniformBuf hal.Buffer
	bindGroup  hal.BindGroup
	indexCount uint32
}

func (f *frameResources) destroy(device hal.Device) {
	if f.bindGroup != nil {
		device.DestroyBindGroup(f.bindGroup)
	}
	if f.uniformBuf != nil {
		device.DestroyBuffer(f.uniformBuf)
	}
	if f.indexBuf != nil {
		device.DestroyBuffer(f.indexBuf)
	}
	if f.vertBuf != nil {
		device.DestroyBuffer(f.vertBuf)
	}
}

// buildFrameResources uploads the frame's vertices, indices and viewport.
// Geometry buffers are left nil for an empty frame.
func (r *GPURenderer) buildFrameResources(frame *sketch.Frame, w, h uint32) (*frameResources, error) {
	res := &frameResources{}
	if !frame.Empty() {
		var err error
		res.vertBuf, err = r.createAndUploadBuffer("sketch_vertices", frame.VertexBytes(),
			gputypes.BufferUsageVertex|gputypes.BufferUsageCopyDst)
		if err != nil {
			return nil, err
		}
		res.indexBuf, err = r.createAndUploadBuffer("sketch_indices", frame.IndexBytes(),
			gputypes.BufferUsageIndex|gputypes.BufferUsageCopyDst)
		if err != nil {
			res.destroy(r.device)
			return nil, err
		}
		res.indexCount = uint32(len(frame.Indices)) //nolint:gosec // bounded by the index limit
	}

	var err error
	res.uniformBuf, err = r.createAndUploadBuffer("sketch_viewport", makeViewportUniform(w, h),
		gputypes.BufferUsageUniform|gputypes.BufferUsageCopyDst)
	if err != nil {
		res.destroy(r.device)
		return nil, err
	}
	res.bindGroup, err = r.device.CreateBindGroup(&hal.BindGroupDescriptor{
		Label:  "sketch_viewport_bind",
		Layout: r.uniformLayout,
		Entries: []gputypes.BindGroupEntry{
			{Binding: 0, Resource: gputypes.BufferBinding{
				Buffer: res.uniformBuf.NativeHandle(), Offset: 0, Size: viewportUniformSize,
			}},
		},
	})
	if err != nil {
		res.destroy(r.device)
		return nil, fmt.Errorf("render: create bind group: %w", err)
	}
	return res, nil
}

// encodeSubmit records the render pass, submits it and waits for the
// device. When pixels is non-nil the offscreen texture is copied back
// into it.
func (r *GPURenderer) encodeSubmit(
	frame *sketch.Frame,
	view hal.TextureView,
	pipeline hal.RenderPipeline,
	res *frameResources,
	pixels []byte,
	stride int,
	w, h uint32,
) error {
	encoder, err := r.device.CreateCommandEncoder(&hal.CommandEncoderDescriptor{
		Label: "sketch_encoder",
	})
	if err != nil {
		return fmt.Errorf("render: create command encoder: %w", err)
	}
	if err := encoder.BeginEncoding("sketch_frame"); err != nil {
		return fmt.Errorf("render: begin encoding: %w", err)
	}

	loadOp := gputypes.LoadOpLoad
	var clearValue gputypes.Color
	if c, ok := frame.Clear.Get(); ok {
		loadOp = gputypes.LoadOpClear
		clearValue = gputypes.Color{R: c.R * c.A, G: c.G * c.A, B: c.B * c.A, A: c.A}
	}

	rp := encoder.BeginRenderPass(&hal.RenderPassDescriptor{
		Label: "sketch_pass",
		ColorAttachments: []hal.RenderPassColorAttachment{{
			View:       view,
			LoadOp:     loadOp,
			StoreOp:    gputypes.StoreOpStore,
			ClearValue: clearValue,
		}},
	})
	if res.indexCount > 0 {
		rp.SetPipeline(pipeline)
		rp.SetBindGroup(0, res.bindGroup, nil)
		rp.SetVertexBuffer(0, res.vertBuf, 0)
		rp.SetIndexBuffer(res.indexBuf, gputypes.IndexFormatUint32, 0)
		rp.DrawIndexed(res.indexCount, 1, 0, 0, 0)
	}
	rp.End()

	var staging hal.Buffer
	var alignedBytesPerRow uint32
	if pixels != nil {
		encoder.TransitionTextures([]hal.TextureBarrier{{
			Texture: r.offscreen.tex,
			Usage: hal.TextureUsageTransition{
				OldUsage: gputypes.TextureUsageRenderAttachment,
				NewUsage: gputypes.TextureUsageCopySrc,
			},
		}})

		alignedBytesPerRow = alignedRowPitch(w)
		staging, err = r.device.CreateBuffer(&hal.BufferDescriptor{
			Label: "sketch_staging",
			Size:  uint64(alignedBytesPerRow) * uint64(h),
			Usage: gputypes.BufferUsageMapRead | gputypes.BufferUsageCopyDst,
		})
		if err != nil {
			encoder.DiscardEncoding()
			return fmt.Errorf("render: create staging buffer: %w", err)
		}
		defer r.device.DestroyBuffer(staging)

		encoder.CopyTextureToBuffer(r.offscreen.tex, staging, []hal.BufferTextureCopy{{
			BufferLayout: hal.ImageDataLayout{Offset: 0, BytesPerRow: alignedBytesPerRow, RowsPerImage: h},
			TextureBase:  hal.ImageCopyTexture{Texture: r.offscreen.tex, MipLevel: 0, Aspect: gputypes.TextureAspectAll},
			Size:         hal.Extent3D{Width: w, Height: h, DepthOrArrayLayers: 1},
		}})

		encoder.TransitionTextures([]hal.TextureBarrier{{
			Texture: r.offscreen.tex,
			Usage: hal.TextureUsageTransition{
				OldUsage: gputypes.TextureUsageCopySrc,
				NewUsage: gputypes.TextureUsageRenderAttachment,
			},
		}})
	}

	cmdBuf, err := encoder.EndEncoding()
	if err != nil {
		return fmt.Errorf("render: end encoding: %w", err)
	}
	defer r.device.FreeCommandBuffer(cmdBuf)

	if _, err := r.queue.Submit([]hal.CommandBuffer{cmdBuf}); err != nil {
		return fmt.Errorf("render: submit: %w", err)
	}
	// Per-frame buffers are destroyed when Render returns, so the device
	// must be done with them.
	if err := r.device.WaitIdle(); err != nil {
		return fmt.Errorf("render: wait for GPU: %w", err)
	}

	if pixels == nil {
		return nil
	}
	return r.readback(staging, alignedBytesPerRow, pixels, stride, w, h)
}

// readback copies the staging buffer into pixels, dropping row padding.
func (r *GPURenderer) readback(staging hal.Buffer, pitch uint32, pixels []byte, stride int, w, h uint32) error {
	size := uint64(pitch) * uint64(h)
	mapping, err := r.device.MapBuffer(staging, 0, size)
	if err != nil {
		return fmt.Errorf("render: map staging buffer: %w", err)
	}
	data := unsafe.Slice((*byte)(mapping.Ptr), size)
	rowBytes := int(w) * 4
	for row := 0; row < int(h); row++ {
		src := data[row*int(pitch) : row*int(pitch)+rowBytes]
		copy(pixels[row*stride:row*stride+rowBytes], src)
	}
	if err := r.device.UnmapBuffer(staging); err != nil {
		return fmt.Errorf("render: unmap staging buffer: %w", err)
	}
	return nil
}

// uploadPixels writes the target's current pixels into the offscreen
// texture so an unclearing frame draws over them.
func (r *GPURenderer) uploadPixels(pixels []byte, stride int, w, h uint32) error {
	rowBytes := int(w) * 4
	data := pixels
	if stride != rowBytes {
		data = make([]byte, rowBytes*int(h))
		for row := 0; row < int(h); row++ {
			copy(data[row*rowBytes:(row+1)*rowBytes], pixels[row*stride:row*stride+rowBytes])
		}
	}
	err := r.queue.WriteTexture(
		&hal.ImageCopyTexture{Texture: r.offscreen.tex, MipLevel: 0, Aspect: gputypes.TextureAspectAll},
		data[:rowBytes*int(h)],
		&hal.ImageDataLayout{Offset: 0, BytesPerRow: uint32(rowBytes), RowsPerImage: h}, //nolint:gosec // w fits uint32
		&hal.Extent3D{Width: w, Height: h, DepthOrArrayLayers: 1},
	)
	if err != nil {
		return fmt.Errorf("render: upload target pixels: %w", err)
	}
	return nil
}

func (r *GPURenderer) createAndUploadBuffer(label string, data []byte, usage gputypes.BufferUsage) (hal.Buffer, error) {
	buf, err := r.device.CreateBuffer(&hal.BufferDescriptor{
		Label: label,
		Size:  uint64(len(data)),
		Usage: usage,
	})
	if err != nil {
		return nil, fmt.Errorf("render: create %s: %w", label, err)
	}
	if err := r.queue.WriteBuffer(buf, 0, data); err != nil {
		r.device.DestroyBuffer(buf)
		return nil, fmt.Errorf("render: write %s: %w", label, err)
	}
	return buf, nil
}

// offscreenTexture is the color target used for pixel targets.
type offscreenTexture struct {
	tex    hal.Texture
	view   hal.TextureView
	width  uint32
	height uint32
}

// ensure (re)creates the texture when the size changes.
func (o *offscreenTexture) ensure(device hal.Device, w, h uint32) error {
	if o.tex != nil && o.width == w && o.height == h {
		return nil
	}
	o.destroy(device)

	tex, err := device.CreateTexture(&hal.TextureDescriptor{
		Label:         "sketch_offscreen",
		Size:          hal.Extent3D{Width: w, Height: h, DepthOrArrayLayers: 1},
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     gputypes.TextureDimension2D,
		Format:        gputypes.TextureFormatRGBA8Unorm,
		Usage: gputypes.TextureUsageRenderAttachment |
			gputypes.TextureUsageCopySrc |
			gputypes.TextureUsageCopyDst,
	})
	if err != nil {
		return fmt.Errorf("render: create offscreen texture: %w", err)
	}
	view, err := device.CreateTextureView(tex, &hal.TextureViewDescriptor{
		Label: "sketch_offscreen_view",
	})
	if err != nil {
		device.DestroyTexture(tex)
		return fmt.Errorf("render: create offscreen view: %w", err)
	}
	o.tex, o.view, o.width, o.height = tex, view, w, h
	return nil
}

func (o *offscreenTexture) destroy(device hal.Device) {
	if o.view != nil {
		device.DestroyTextureView(o.view)
		o.view = nil
	}
	if o.tex != nil {
		device.DestroyTexture(o.tex)
		o.tex = nil
	}
	o.width, o.height = 0, 0
}

// vertexLayout describes sketch.Vertex as laid out by Frame.VertexBytes.
func vertexLayout() []gputypes.VertexBufferLayout {
	return []gputypes.VertexBufferLayout{
		{
			ArrayStride: sketch.VertexStride,
			StepMode:    gputypes.VertexStepModeVertex,
			Attributes: []gputypes.VertexAttribute{
				{Format: gputypes.VertexFormatFloat32x2, Offset: 0, ShaderLocation: 0}, // position
				{Format: gputypes.VertexFormatFloat32x4, Offset: 8, ShaderLocation: 1}, // color
			},
		},
	}
}

// makeViewportUniform encodes the target size for the vertex shader.
func makeViewportUniform(w, h uint32) []byte {
	buf := make([]byte, viewportUniformSize)
	binary.LittleEndian.PutUint32(buf[0:4], math.Float32bits(float32(w)))
	binary.LittleEndian.PutUint32(buf[4:8], math.Float32bits(float32(h)))
	return buf
}

// alignedRowPitch rounds a row of w RGBA pixels up to copyPitchAlignment.
func alignedRowPitch(w uint32) uint32 {
	return (w*4 + copyPitchAlignment - 1) &^ (copyPitchAlignment - 1)
}

// Ensure GPURenderer implements CapableRenderer.
var _ CapableRenderer = (*GPURenderer)(nil)
