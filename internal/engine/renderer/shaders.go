package renderer

const vertexShader = `
#version 410 core

layout (location = 0) in vec3 aPos;
layout (location = 1) in vec3 aNormal;

uniform mat4 uModel;
uniform mat4 uView;
uniform mat4 uProjection;

out vec3 vWorldPos;
out vec3 vNormal;

void main() {
    vec4 world = uModel * vec4(aPos, 1.0);
    vWorldPos = world.xyz;
    vNormal = mat3(transpose(inverse(uModel))) * aNormal;
    gl_Position = uProjection * uView * world;
}
`

const fragmentShader = `
#version 410 core

#define MAX_LIGHTS 32

in vec3 vWorldPos;
in vec3 vNormal;

uniform vec3 uColor;
uniform int uEmissive;
uniform int uLightCount;
uniform vec3 uLightPos[MAX_LIGHTS];
uniform vec3 uLightColor[MAX_LIGHTS];

out vec4 FragColor;

void main() {
    if (uEmissive == 1) {
        FragColor = vec4(uColor, 1.0);
        return;
    }
    vec3 n = normalize(vNormal);
    vec3 lit = vec3(0.05);
    for (int i = 0; i < uLightCount; i++) {
        vec3 l = normalize(uLightPos[i] - vWorldPos);
        lit += uLightColor[i] * max(dot(n, l), 0.0);
    }
    FragColor = vec4(uColor * lit, 1.0);
}
`
