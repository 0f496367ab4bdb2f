package render

// maxLights is the number of directional lights the lit shader evaluates.
const maxLights = 4

// Lit shader: ambient plus up to maxLights directional lights with Blinn-Phong specular,
// and a reflection of the environment panorama bound as texture1 (raylib binds the
// metalness map slot there). Rougher surfaces read blurrier mip levels and reflect less.
const (
	litVS = `#version 330
in vec3 vertexPosition;
in vec2 vertexTexCoord;
in vec3 vertexNormal;
uniform mat4 matProjection;
uniform mat4 matView;
uniform mat4 matModel;
uniform mat4 matNormal;
out vec3 fragPosition;
out vec2 fragTexCoord;
out vec3 fragNormal;
void main() {
  vec4 worldPos = matModel * vec4(vertexPosition, 1.0);
  fragPosition = worldPos.xyz;
  fragTexCoord = vertexTexCoord;
  fragNormal = normalize(mat3(matNormal) * vertexNormal);
  gl_Position = matProjection * matView * worldPos;
}
`
	litFS = `#version 330
in vec3 fragPosition;
in vec2 fragTexCoord;
in vec3 fragNormal;
uniform sampler2D texture0;
uniform sampler2D texture1;
uniform vec4 colDiffuse;
uniform vec3 viewPos;
uniform vec4 ambient;
uniform vec3 lightDirs[4];
uniform vec3 lightColors[4];
uniform float lightCount;
uniform float specularPower;
uniform float specularStrength;
uniform float metalness;
uniform float roughness;
uniform float envIntensity;
uniform float hasEnv;
out vec4 finalColor;
void main() {
  vec4 tint = texture(texture0, fragTexCoord) * colDiffuse;
  vec3 N = normalize(fragNormal);
  vec3 V = normalize(viewPos - fragPosition);
  vec3 specTint = mix(vec3(1.0), tint.rgb, metalness);
  vec3 diffuse = vec3(0.0);
  vec3 specular = vec3(0.0);
  for (int i = 0; i < 4; i++) {
    if (float(i) >= lightCount) break;
    vec3 L = normalize(lightDirs[i]);
    float NdotL = max(dot(N, L), 0.0);
    diffuse += tint.rgb * NdotL * lightColors[i] * (1.0 - 0.5 * metalness);
    vec3 H = normalize(L + V);
    float spec = pow(max(dot(N, H), 0.0), specularPower) * specularStrength;
    specular += specTint * lightColors[i] * spec * (NdotL > 0.0 ? 1.0 : 0.0);
  }
  vec3 amb = ambient.rgb * tint.rgb;
  vec3 R = reflect(-V, N);
  vec2 envUV = vec2(atan(R.z, R.x) / 6.28318530718 + 0.5, 0.5 - asin(clamp(R.y, -1.0, 1.0)) / 3.14159265359);
  vec3 env = textureLod(texture1, envUV, roughness * 8.0).rgb;
  float reflectance = mix(0.04, 1.0, metalness) * (1.0 - 0.7 * roughness);
  vec3 refl = env * specTint * reflectance * envIntensity * hasEnv;
  finalColor = vec4(amb + diffuse + specular + refl, tint.a);
}
`
)

// Equirectangular skybox shader: samples a 2D panorama by view direction.
const (
	equirectVS = `#version 330
in vec3 vertexPosition;
uniform mat4 matProjection;
uniform mat4 matView;
uniform mat4 matModel;
out vec3 fragWorldPos;
void main() {
  vec4 worldPos = matModel * vec4(vertexPosition, 1.0);
  fragWorldPos = worldPos.xyz;
  gl_Position = matProjection * matView * worldPos;
}
`
	equirectFS = `#version 330
in vec3 fragWorldPos;
out vec4 finalColor;
uniform sampler2D skybox;
uniform vec3 cameraPosition;
uniform float intensity;
void main() {
  vec3 dir = normalize(fragWorldPos - cameraPosition);
  float lon = atan(dir.z, dir.x);
  float lat = asin(clamp(dir.y, -1.0, 1.0));
  float u = lon / 6.28318530718 + 0.5;
  float v = 0.5 - lat / 3.14159265359;
  finalColor = vec4(texture(skybox, vec2(u, v)).rgb * intensity, 1.0);
}
`
)

// Cubemap skybox shader, after raylib's skybox example. The cube's local position is the
// lookup direction; the cubemap is bound to the material's cubemap slot.
const (
	cubeSkyVS = `#version 330
in vec3 vertexPosition;
uniform mat4 matProjection;
uniform mat4 matView;
uniform mat4 matModel;
out vec3 fragDir;
void main() {
  fragDir = vertexPosition;
  gl_Position = matProjection * matView * matModel * vec4(vertexPosition, 1.0);
}
`
	cubeSkyFS = `#version 330
in vec3 fragDir;
out vec4 finalColor;
uniform samplerCube environmentMap;
uniform float intensity;
void main() {
  finalColor = vec4(texture(environmentMap, fragDir).rgb * intensity, 1.0);
}
`
)
