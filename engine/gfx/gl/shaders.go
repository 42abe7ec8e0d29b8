package glbackend

// Embedded GLSL for the built-in pipeline. The uniform names here are the
// engine's shader contract: the render passes populate them every frame and
// user shaders that declare the same names get the same data.

// MainVertexSrc transforms into world space and clip space for the lit
// color pass.
const MainVertexSrc = `
#version 430 core
layout(location = 0) in vec3 aPos;
layout(location = 1) in vec3 aNormal;
layout(location = 2) in vec4 aColor;
layout(location = 3) in vec2 aTex;

uniform mat4 u_VP;
uniform mat4 u_Model;

out vec3 fragPos;
out vec3 normal;
out vec4 vertColor;
out vec2 texCoord;

void main() {
    fragPos   = vec3(u_Model * vec4(aPos, 1.0));
    normal    = mat3(transpose(inverse(u_Model))) * aNormal;
    vertColor = aColor;
    texCoord  = aTex;
    gl_Position = u_VP * vec4(fragPos, 1.0);
}
`

// MainFragmentSrc is the lit color pass. Lights arrive in two std430
// storage buffers so the light count is bounded only by the device limit.
//
// Cascade selection is first-matching with fallback to the farthest
// cascade: the chosen cascade is the first i with
// dist < (farPlane/2)*cascadeSplit[i].
//
// Shadow bias scales with the angle between surface normal and light:
// bias = mix(biasOffset, biasOffset+biasFactor, 1 - N.L). PCF is a fixed
// box of taps averaged, the same rule for 2D and cube maps.
const MainFragmentSrc = `
#version 430 core

struct DirectLight {
    vec4  color;
    vec4  direction;
    float intensity;
    int   shadowIndex;
    int   cascadeLevel;
    float farPlane;
    vec4  cascadeSplit;
    mat4  lightSpaceMatrices[4];
};

struct PointLight {
    vec4  color;
    vec4  position;
    float intensity;
    int   shadowIndex;
    float farPlane;
    float pad0;
};

layout(std430, binding = 0) readonly buffer DirectLightBuffer {
    int directLightCount;
    DirectLight directLights[];
};

layout(std430, binding = 1) readonly buffer PointLightBuffer {
    int pointLightCount;
    PointLight pointLights[];
};

struct SceneState {
    float ambient;
    float biasFactor;
    float biasOffset;
};

uniform SceneState scene;
uniform vec3 camPos;

uniform sampler2D diffuse0;
uniform sampler2D specular0;
uniform sampler2DArray shadowMaps;
uniform samplerCubeArray shadowCubeMaps;

uniform bool  useTexture;
uniform bool  useAlphaCutoff;
uniform float alphaCutoff;
uniform vec4  baseColorFactor;
uniform bool  u_LightingEnabled;
uniform float u_SpecularStrength;

in vec3 fragPos;
in vec3 normal;
in vec4 vertColor;
in vec2 texCoord;

out vec4 FragColor;

float shadowBias(vec3 N, vec3 L) {
    return mix(scene.biasOffset, scene.biasOffset + scene.biasFactor,
               1.0 - max(dot(N, L), 0.0));
}

float directShadow(DirectLight light, vec3 N) {
    if (light.shadowIndex < 0) {
        return 0.0;
    }

    // first cascade whose split threshold exceeds the fragment distance,
    // farthest cascade if none match
    float dist = length(fragPos - camPos);
    int cascade = light.cascadeLevel - 1;
    for (int i = 0; i < light.cascadeLevel; ++i) {
        if (dist < (light.farPlane / 2.0) * light.cascadeSplit[i]) {
            cascade = i;
            break;
        }
    }

    vec4 lightSpace = light.lightSpaceMatrices[cascade] * vec4(fragPos, 1.0);
    vec3 projCoords = lightSpace.xyz / lightSpace.w * 0.5 + 0.5;
    if (projCoords.z > 1.0) {
        return 0.0;
    }

    vec3 L = normalize(light.direction.xyz);
    float bias = shadowBias(N, L);
    int layer = light.shadowIndex * 4 + cascade;

    float shadow = 0.0;
    vec2 texelSize = 1.0 / vec2(textureSize(shadowMaps, 0));
    for (int x = -1; x <= 1; ++x) {
        for (int y = -1; y <= 1; ++y) {
            float depth = texture(shadowMaps, vec3(projCoords.xy + vec2(x, y) * texelSize, layer)).r;
            shadow += projCoords.z - bias > depth ? 1.0 : 0.0;
        }
    }
    return shadow / 9.0;
}

vec3 pcfOffsets[20] = vec3[](
    vec3( 1,  1,  1), vec3( 1, -1,  1), vec3(-1, -1,  1), vec3(-1,  1,  1),
    vec3( 1,  1, -1), vec3( 1, -1, -1), vec3(-1, -1, -1), vec3(-1,  1, -1),
    vec3( 1,  1,  0), vec3( 1, -1,  0), vec3(-1, -1,  0), vec3(-1,  1,  0),
    vec3( 1,  0,  1), vec3(-1,  0,  1), vec3( 1,  0, -1), vec3(-1,  0, -1),
    vec3( 0,  1,  1), vec3( 0, -1,  1), vec3( 0, -1, -1), vec3( 0,  1, -1)
);

float pointShadow(PointLight light, vec3 N) {
    if (light.shadowIndex < 0) {
        return 0.0;
    }

    vec3 toFrag = fragPos - light.position.xyz;
    float current = length(toFrag) / light.farPlane;
    if (current > 1.0) {
        return 0.0;
    }

    vec3 L = normalize(-toFrag);
    float bias = shadowBias(N, L) / light.farPlane;

    float shadow = 0.0;
    float diskRadius = 0.01;
    for (int i = 0; i < 20; ++i) {
        vec3 dir = toFrag + pcfOffsets[i] * diskRadius * length(toFrag);
        float depth = texture(shadowCubeMaps, vec4(dir, light.shadowIndex)).r;
        shadow += current - bias > depth ? 1.0 : 0.0;
    }
    return shadow / 20.0;
}

void main() {
    vec4 base = vertColor * baseColorFactor;
    if (useTexture) {
        base = texture(diffuse0, texCoord) * baseColorFactor;
    }
    if (useAlphaCutoff && base.a < alphaCutoff) {
        discard;
    }
    if (!u_LightingEnabled) {
        FragColor = base;
        return;
    }

    vec3 N = normalize(normal);
    vec3 V = normalize(camPos - fragPos);
    float specMask = u_SpecularStrength;
    if (useTexture) {
        specMask *= texture(specular0, texCoord).g;
    }

    vec3 lit = vec3(scene.ambient);

    for (int i = 0; i < directLightCount; ++i) {
        DirectLight light = directLights[i];
        vec3 L = normalize(light.direction.xyz);
        float diff = max(dot(N, L), 0.0);
        vec3 H = normalize(L + V);
        float spec = pow(max(dot(N, H), 0.0), 32.0) * specMask;
        float shadow = directShadow(light, N);
        lit += (1.0 - shadow) * (diff + spec) * light.intensity * light.color.rgb;
    }

    for (int i = 0; i < pointLightCount; ++i) {
        PointLight light = pointLights[i];
        vec3 toLight = light.position.xyz - fragPos;
        float dist = length(toLight);
        vec3 L = toLight / max(dist, 1e-5);
        float attenuation = 1.0 / (1.0 + 0.09 * dist + 0.032 * dist * dist);
        float diff = max(dot(N, L), 0.0);
        vec3 H = normalize(L + V);
        float spec = pow(max(dot(N, H), 0.0), 32.0) * specMask;
        float shadow = pointShadow(light, N);
        lit += (1.0 - shadow) * (diff + spec) * attenuation * light.intensity * light.color.rgb;
    }

    FragColor = vec4(base.rgb * lit, base.a);
}
`

// DepthVertexSrc outputs world-space positions; the geometry stages below
// project them per layer.
const DepthVertexSrc = `
#version 430 core
layout(location = 0) in vec3 aPos;

uniform mat4 u_Model;

void main() {
    gl_Position = u_Model * vec4(aPos, 1.0);
}
`

// DepthGeometrySrc fans each triangle out to the light's cascade layers.
// One invocation per cascade; layers are lightIndex*4 + cascade.
const DepthGeometrySrc = `
#version 430 core
layout(triangles, invocations = 4) in;
layout(triangle_strip, max_vertices = 3) out;

struct Light {
    mat4 matrices[4];
    int  index;
    int  cascadeDepth;
};

uniform Light light;

void main() {
    if (gl_InvocationID >= light.cascadeDepth) {
        return;
    }
    for (int i = 0; i < 3; ++i) {
        gl_Position = light.matrices[gl_InvocationID] * gl_in[i].gl_Position;
        gl_Layer = light.index * 4 + gl_InvocationID;
        EmitVertex();
    }
    EndPrimitive();
}
`

const DepthFragmentSrc = `
#version 430 core

void main() {
}
`

// CubeDepthGeometrySrc fans each input triangle out to all six cube faces
// of the light's slot (6x amplification, one transformed triangle per face).
const CubeDepthGeometrySrc = `
#version 430 core
layout(triangles, invocations = 6) in;
layout(triangle_strip, max_vertices = 3) out;

uniform mat4 shadowMatrices[6];
uniform int lightIndex;

out vec4 fragPos;

void main() {
    for (int i = 0; i < 3; ++i) {
        fragPos = gl_in[i].gl_Position;
        gl_Position = shadowMatrices[gl_InvocationID] * fragPos;
        gl_Layer = lightIndex * 6 + gl_InvocationID;
        EmitVertex();
    }
    EndPrimitive();
}
`

// CubeDepthFragmentSrc stores linearized distance-to-light normalized by
// the light's far plane, comparable across differently configured lights.
const CubeDepthFragmentSrc = `
#version 430 core

in vec4 fragPos;

uniform vec3 lightPos;
uniform float farPlane;

void main() {
    gl_FragDepth = length(fragPos.xyz - lightPos) / farPlane;
}
`
